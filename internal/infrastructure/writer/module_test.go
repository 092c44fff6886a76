package writer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleWriter_Render(t *testing.T) {
	value := parse(t, "title: x\n")

	tests := []struct {
		name   string
		module Module
		want   string
	}{
		{
			name:   "plain",
			module: Module{Value: value},
			want:   `export default {"title":"x"} `,
		},
		{
			name:   "const",
			module: Module{Value: value, Const: true},
			want:   `export default {"title":"x"} as const`,
		},
		{
			name:   "openapi",
			module: Module{Value: value, OpenAPI: true},
			want: "import type { OpenAPI } from 'openapi-types'\n" +
				`const parsed = {"title":"x"} ` + "\n" +
				"export default parsed",
		},
		{
			name:   "openapi const",
			module: Module{Value: value, OpenAPI: true, Const: true},
			want: "import type { OpenAPI } from 'openapi-types'\n" +
				`const parsed = {"title":"x"} as const` + "\n" +
				"export default parsed",
		},
		{
			name:   "undefined value",
			module: Module{},
			want:   "export default undefined ",
		},
		{
			name:   "undefined value const",
			module: Module{Const: true},
			want:   "export default undefined as const",
		},
	}

	mw := NewModuleWriter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mw.Render(tt.module)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModuleWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	err := NewModuleWriter().Write(&buf, Module{Value: parse(t, "[1, 2]\n"), Const: true})
	require.NoError(t, err)
	assert.Equal(t, "export default [1,2] as const", buf.String())
}
