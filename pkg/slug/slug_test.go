package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "GeForce RTX 4070 Ti", "geforce-rtx-4070-ti"},
		{"punctuation", "Ryzen 7 7800X3D (Boxed)!", "ryzen-7-7800x3d-boxed"},
		{"accents", "Café Édition", "cafe-edition"},
		{"leading and trailing", "  --DDR5--  ", "ddr5"},
		{"only symbols", "!@#$", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.input))
		})
	}
}

func TestMake_Transliterates(t *testing.T) {
	got := Make("그래픽카드")
	assert.NotEmpty(t, got)
	assert.True(t, IsValid(got), got)
}

func TestMake_Truncates(t *testing.T) {
	got := Make(strings.Repeat("ab ", 200))
	assert.LessOrEqual(t, len(got), MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "socket_type", Key("Socket Type"))
	assert.Equal(t, "tdp_w", Key("TDP (W)"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("gpus"))
	assert.True(t, IsValid("rtx-4070"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("RTX"))
	assert.False(t, IsValid("a--b"))
	assert.False(t, IsValid("-a"))
}
