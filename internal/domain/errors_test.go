package domain

import (
	"errors"
	"testing"
)

func TestErrCircularReference_Error(t *testing.T) {
	err := &ErrCircularReference{Path: "/path/to/file.yaml#/components/schemas/A"}
	want := "circular reference detected: /path/to/file.yaml#/components/schemas/A"
	if got := err.Error(); got != want {
		t.Errorf("ErrCircularReference.Error() = %v, want %v", got, want)
	}
}

func TestErrInvalidReference_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ErrInvalidReference
		want string
	}{
		{
			name: "without reason",
			err:  &ErrInvalidReference{Ref: "./invalid.yaml"},
			want: "invalid reference: ./invalid.yaml",
		},
		{
			name: "with reason",
			err:  &ErrInvalidReference{Ref: "#bad", Reason: "pointer must start with /"},
			want: "invalid reference: #bad (pointer must start with /)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ErrInvalidReference.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrUnresolvedPointer_Error(t *testing.T) {
	err := &ErrUnresolvedPointer{Ref: "#/components/schemas/Missing", Token: "Missing"}
	want := `error resolving $ref pointer "#/components/schemas/Missing": token "Missing" does not exist`
	if got := err.Error(); got != want {
		t.Errorf("ErrUnresolvedPointer.Error() = %v, want %v", got, want)
	}
}

func TestErrOpenAPIParse_Unwrap(t *testing.T) {
	inner := &ErrCircularReference{Path: "#/a"}
	err := error(&ErrOpenAPIParse{Err: inner})

	want := "[yamlmodule] OpenAPI parse error:\ncircular reference detected: #/a"
	if got := err.Error(); got != want {
		t.Errorf("ErrOpenAPIParse.Error() = %q, want %q", got, want)
	}

	var circular *ErrCircularReference
	if !errors.As(err, &circular) {
		t.Fatal("errors.As() did not find the wrapped ErrCircularReference")
	}
	if circular.Path != "#/a" {
		t.Errorf("wrapped Path = %v, want #/a", circular.Path)
	}
}
