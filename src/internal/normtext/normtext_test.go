package normtext

import "testing"

func TestFold(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"  Hello  World  ", "helloworld"},
		{"ＡＢＣ１２３", "abc123"},
		{"カドカワ　ブックス", "カドカワブックス"},
		{"角川—スニーカー", "角川-スニーカー"},
		{"【新刊】", "[新刊]"},
		{"ライト・ノベル", "ライト.ノベル"},
		{"\tＧＡ文庫 　", "ga文庫"},
	}
	for _, c := range cases {
		if got := Fold(c.in); got != c.want {
			t.Fatalf("Fold(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFoldHalfWidthKatakana(t *testing.T) {
	// Half-width katakana widens to full-width under width folding.
	if got := Fold("ｶﾄﾞｶﾜ"); got != "カドカワ" {
		t.Fatalf("Fold half-width katakana: got %q", got)
	}
}

func TestCleanIdentifier(t *testing.T) {
	cases := []struct{ in, want string }{
		{"978-4-00-123456-7", "9784001234567"},
		{"ISBN 9784001234567", "9784001234567"},
		{"４-１２-３４５６７８-x", "412345678X"},
		{"no digits", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := CleanIdentifier(c.in); got != c.want {
			t.Fatalf("CleanIdentifier(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
