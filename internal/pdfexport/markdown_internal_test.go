package pdfexport

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{name: "plain", markdown: "5 minutes of jogging", want: "5 minutes of jogging"},
		{name: "emphasis", markdown: "Keep your **core** tight", want: "Keep your core tight"},
		{name: "soft break", markdown: "Jumping jacks\narm circles", want: "Jumping jacks arm circles"},
		{name: "list", markdown: "- Jumping jacks\n- Arm circles", want: "- Jumping jacks\n- Arm circles"},
		{
			name:     "paragraph then list",
			markdown: "Light cardio:\n\n* Rowing\n* Cycling",
			want:     "Light cardio:\n- Rowing\n- Cycling",
		},
		{name: "empty", markdown: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plainText(tt.markdown); got != tt.want {
				t.Errorf("plainText() = %q, want %q", got, tt.want)
			}
		})
	}
}
