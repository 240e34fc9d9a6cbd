package tristate

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestMarshalZerologObject(t *testing.T) {
	tests := []struct {
		name string
		v    Value[string]
		want string
	}{
		{"present", Present("eu-west"), `{"region":{"state":"present","value":"eu-west"}}`},
		{"null", Null[string](), `{"region":{"state":"null"}}`},
		{"absent", Absent[string](), `{"region":{"state":"absent"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)
			logger.Log().Object("region", tt.v).Send()
			assert.JSONEq(t, tt.want, buf.String())
		})
	}
}
