package slug

import "testing"

// TestGenerate exercises the slug generator with titles, punctuation,
// accents, whitespace and edge cases.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Titles ---
		{
			name:  "simple two words",
			input: "Nouvelle fiche",
			want:  "nouvelle-fiche",
		},
		{
			name:  "title with year",
			input: "Le Horla 1887",
			want:  "le-horla-1887",
		},
		{
			name:  "duplicate suffix",
			input: "Le Horla (copie)",
			want:  "le-horla-copie",
		},

		// --- Accents and ligatures ---
		{
			name:  "french accents folded",
			input: "Écrire à l'été",
			want:  "ecrire-a-l-ete",
		},
		{
			name:  "typographic apostrophe",
			input: "Nom de l’auteur·e",
			want:  "nom-de-l-auteure",
		},
		{
			name:  "ligatures expanded",
			input: "Œuvre et cœur",
			want:  "oeuvre-et-coeur",
		},
		{
			name:  "cedilla and umlaut",
			input: "Garçon über Noël",
			want:  "garcon-uber-noel",
		},
		{
			name:  "non latin stripped",
			input: "Fiche 日本",
			want:  "fiche",
		},

		// --- Punctuation ---
		{
			name:  "punctuation marks",
			input: "Contexte / Résumé : thèmes !",
			want:  "contexte-resume-themes",
		},
		{
			name:  "hash and dollar",
			input: "Fiche #42 coûte $10",
			want:  "fiche-42-coute-10",
		},

		// --- Whitespace and hyphens ---
		{
			name:  "tabs and newlines are separators",
			input: "hello\tworld\nagain",
			want:  "hello-world-again",
		},
		{
			name:  "hyphens and spaces mixed",
			input: "  --hello -- world--  ",
			want:  "hello-world",
		},
		{
			name:  "single hyphen preserved",
			input: "sido-vrilles",
			want:  "sido-vrilles",
		},

		// --- Edge cases ---
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only special characters",
			input: "!@#$%^&*()…",
			want:  "",
		},
		{
			name:  "date-like string",
			input: "2026-02-25",
			want:  "2026-02-25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	for _, s := range []string{"hello-world", "fiche-2026", "a", "123"} {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}

func TestFold(t *testing.T) {
	if got, want := Fold("Éléphant à Noël"), "Elephant a Noel"; got != want {
		t.Errorf("Fold = %q, want %q", got, want)
	}
}

func TestOrDefault(t *testing.T) {
	if got := OrDefault("…", "fiche"); got != "fiche" {
		t.Errorf("OrDefault(…) = %q", got)
	}
	if got := OrDefault("Le Horla", "fiche"); got != "le-horla" {
		t.Errorf("OrDefault(Le Horla) = %q", got)
	}
}
