package search

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Café", "cafe"},
		{"AÇÚCAR", "acucar"},
		{"Feijão", "feijao"},
		{"Arroz Tio João", "arroz tio joao"},
		{"leite", "leite"},
		{"", ""},
		{"PÃO DE QUEIJO", "pao de queijo"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize("Açaí Orgânico")
	if twice := Normalize(once); twice != once {
		t.Errorf("Normalize not idempotent: %q != %q", twice, once)
	}
}
