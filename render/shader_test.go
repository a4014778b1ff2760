package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/naga/ir"
)

func TestPassThroughShaderEmbedded(t *testing.T) {
	src := PassThroughShader()
	if src == "" {
		t.Fatal("PassThroughShader() is empty")
	}
	for _, name := range []string{VertexEntryPoint, FragmentEntryPoint} {
		if !strings.Contains(src, "fn "+name) {
			t.Errorf("shader source does not declare %s", name)
		}
	}
}

func TestValidatePassThroughShader(t *testing.T) {
	if err := ValidateShader(PassThroughShader(), PassThroughEntryPoints...); err != nil {
		t.Fatalf("ValidateShader(pass-through) error = %v", err)
	}
}

func TestValidateShaderMissingEntryPoint(t *testing.T) {
	const vertexOnly = `
@vertex
fn vs_main() -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`
	err := ValidateShader(vertexOnly, PassThroughEntryPoints...)
	if !errors.Is(err, ErrMissingEntryPoint) {
		t.Fatalf("ValidateShader() error = %v, want ErrMissingEntryPoint", err)
	}
	if !strings.Contains(err.Error(), FragmentEntryPoint) {
		t.Errorf("error %q does not name %s", err, FragmentEntryPoint)
	}
}

func TestValidateShaderWrongStage(t *testing.T) {
	const swapped = `
@fragment
fn vs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`
	err := ValidateShader(swapped, EntryPoint{Name: VertexEntryPoint, Stage: ir.StageVertex})
	if !errors.Is(err, ErrMissingEntryPoint) {
		t.Errorf("ValidateShader() error = %v, want ErrMissingEntryPoint", err)
	}
}

func TestValidateShaderSyntaxError(t *testing.T) {
	err := ValidateShader("fn vs_main( {", PassThroughEntryPoints...)
	if !errors.Is(err, ErrShader) {
		t.Errorf("ValidateShader(garbage) error = %v, want ErrShader", err)
	}
}
