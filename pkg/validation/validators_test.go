package validation_test

import (
	"testing"

	"go-triagem-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestCheckCPF(t *testing.T) {
	tests := []struct {
		name string
		cpf  string
		want bool
	}{
		{"Valid with formatting", "529.982.247-25", true},
		{"Valid digits only", "52998224725", true},
		{"Wrong first check digit", "529.982.247-35", false},
		{"Wrong second check digit", "529.982.247-24", false},
		{"All digits equal", "111.111.111-11", false},
		{"All zeros", "00000000000", false},
		{"Too short", "5299822472", false},
		{"Too long", "529982247255", false},
		{"Letters", "529.982.247-2a", false},
		{"Stray characters", "529 982 247 25", false},
		{"Empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.CheckCPF(tt.cpf))
		})
	}
}

func TestValidNameTag(t *testing.T) {
	v := validator.New()
	validation.RegisterValidators(v)

	type subject struct {
		Name string `validate:"valid_name"`
	}

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"Plain name", "Maria Silva", true},
		{"Accented", "João d'Ávila-Souza", true},
		{"Punctuation", "Enfermeiro(a) Jr.", true},
		{"Empty passes without required", "", true},
		{"Rejects symbols", "Maria <script>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(subject{Name: tt.value})
			if tt.want {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidCPFTag(t *testing.T) {
	v := validator.New()
	validation.RegisterValidators(v)

	type subject struct {
		CPF string `validate:"omitempty,valid_cpf"`
	}

	assert.NoError(t, v.Struct(subject{CPF: "529.982.247-25"}))
	assert.NoError(t, v.Struct(subject{}))
	assert.Error(t, v.Struct(subject{CPF: "123.456.789-00"}))
}
