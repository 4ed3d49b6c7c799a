package ocr

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "crlf", in: "FOLHA DE PAGAMENTO\r\nJOÃO SILVA\r\n", want: "FOLHA DE PAGAMENTO\nJOÃO SILVA"},
		{name: "tabs and runs of spaces", in: "NOME:\t\tJOÃO   SILVA", want: "NOME: JOÃO SILVA"},
		{name: "ruled line noise", in: "JOÃO SILVA\n_____\nSALÁRIO", want: "JOÃO SILVA\n\nSALÁRIO"},
		{name: "blank line collapse", in: "A\n\n\n\n\nB", want: "A\n\nB"},
		{name: "trailing spaces per line", in: "A   \nB  ", want: "A\nB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
