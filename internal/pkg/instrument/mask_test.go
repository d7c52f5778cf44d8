package instrument

import (
	"reflect"
	"testing"
)

func TestMaskKeys(t *testing.T) {
	keys := MaskKeys([]string{" Secret ", ""})

	for _, k := range []string{"password", "otp", "email", "cookie", "secret"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("key %q not masked", k)
		}
	}
	if _, ok := keys[""]; ok {
		t.Fatal("empty key present")
	}
}

func TestMaskData(t *testing.T) {
	// Arrange
	in := map[string]any{
		"email":    "root@blipzo.test",
		"Password": "hunter2",
		"challenge": map[string]any{
			"otp":    "123456",
			"status": "pending",
		},
		"items": []any{map[string]any{"token": "abc", "id": "1"}},
	}

	// Act
	got := MaskData(in, MaskKeys(nil))

	// Assert
	want := map[string]any{
		"email":    "***",
		"Password": "***",
		"challenge": map[string]any{
			"otp":    "***",
			"status": "pending",
		},
		"items": []any{map[string]any{"token": "***", "id": "1"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MaskData = %#v", got)
	}
}
