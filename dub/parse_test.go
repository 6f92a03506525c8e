package dub

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	type test struct {
		input string
		want  Command
	}
	tests := []test{
		{
			input: "wave square",
			want: Command{
				Name: Identifier("wave"),
				Args: []Node{Identifier("square")},
			},
		},
		{
			input: "hold A F10 Key1",
			want: Command{
				Name: Identifier("hold"),
				Args: []Node{Identifier("A"), Identifier("F10"), Identifier("Key1")},
			},
		},
		{
			input: "volume .25",
			want: Command{
				Name: Identifier("volume"),
				Args: []Node{Float(0.25)},
			},
		},
		{
			input: `record "take 1.wav"   -3`,
			want: Command{
				Name: Identifier("record"),
				Args: []Node{String("take 1.wav"), Int(-3)},
			},
		},
		{
			input: `load ""`,
			want: Command{
				Name: Identifier("load"),
				Args: []Node{String("")},
			},
		},
		{
			input: "\tstatus ",
			want:  Command{Name: Identifier("status")},
		},
	}
	for _, test := range tests {
		t.Log(test.input)
		got, err := Parse(test.input)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(test.want, got) {
			t.Errorf("\nwant: %+v\ngot:  %+v", test.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"1 wave",
		`"wave"`,
		`record "unterminated`,
		"volume 1x",
		"wave sq-uare",
	} {
		if _, err := Parse(input); err == nil {
			t.Errorf("expected error for input: %q", input)
		}
	}
}

func TestCommandString(t *testing.T) {
	cmd, err := Parse(`record "a b.wav" 2.5 A 3`)
	if err != nil {
		t.Fatal(err)
	}
	if want, got := `record "a b.wav" 2.5 A 3`, cmd.String(); want != got {
		t.Errorf("want %v, got %v", want, got)
	}
}
