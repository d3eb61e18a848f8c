package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"fiches/internal/models"
	"fiches/internal/store"
	"fiches/internal/style"
	"fiches/internal/theme"
)

// templateMap is an in-memory TemplateSource.
type templateMap map[string]*models.Template

func (m templateMap) Find(id string) (*models.Template, error) {
	return m[id], nil
}

// fakeExporter records uploads.
type fakeExporter struct {
	key         string
	contentType string
	body        []byte
	err         error
}

func (f *fakeExporter) Upload(_ context.Context, key, contentType string, body io.Reader, size int64) error {
	if f.err != nil {
		return f.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if int64(len(b)) != size {
		return fmt.Errorf("size %d, body %d", size, len(b))
	}
	f.key, f.contentType, f.body = key, contentType, b
	return nil
}

func (f *fakeExporter) FileURL(key string) string {
	return "https://cdn.example.com/" + key
}

func bookTemplate() *models.Template {
	return &models.Template{
		ID:   "sido-orange",
		Name: "Sido orange",
		Colors: models.Colors{
			Primary: "#F97316", Accent: "#FDBA74", Background: "#FFF7ED", Text: "#1F2937",
		},
		Fields: []models.TemplateField{
			{Key: "title", Label: "Titre", Type: models.FieldTypeText},
			{Key: "author", Label: "Auteur", Type: models.FieldTypeText},
			{Key: "themes", Label: "Thèmes", Type: models.FieldTypeTags},
			{Key: "quotes", Label: "Citations", Type: models.FieldTypeList},
		},
	}
}

// testService builds a service over a file store in a temp dir with a fixed
// clock and sequential ids.
func testService(t *testing.T, exporter Exporter) (*Service, *store.FileDocumentStore) {
	t.Helper()

	docs, err := store.NewFileDocumentStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileDocumentStore: %v", err)
	}
	catalog, err := theme.NewCatalog(theme.DefaultPresets())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	svc := New(docs, templateMap{"sido-orange": bookTemplate()}, catalog, nil, exporter)

	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
	return svc, docs
}

func TestCreate(t *testing.T) {
	svc, _ := testService(t, nil)
	ctx := context.Background()

	t.Run("defaults title and theme", func(t *testing.T) {
		doc, err := svc.Create(ctx, CreateInput{TemplateID: "sido-orange", Title: "   "})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if doc.Title != models.DefaultDocumentTitle {
			t.Errorf("Title = %q, want %q", doc.Title, models.DefaultDocumentTitle)
		}
		if diff := cmp.Diff(bookTemplate().Colors.Map(), doc.Theme); diff != "" {
			t.Errorf("Theme mismatch (-want +got):\n%s", diff)
		}
		if !doc.CreatedAt.Equal(doc.UpdatedAt) {
			t.Errorf("CreatedAt %v != UpdatedAt %v", doc.CreatedAt, doc.UpdatedAt)
		}

		got, err := svc.Get(ctx, doc.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Title != models.DefaultDocumentTitle {
			t.Errorf("stored Title = %q", got.Title)
		}
	})

	t.Run("explicit theme is kept", func(t *testing.T) {
		doc, err := svc.Create(ctx, CreateInput{
			TemplateID: "sido-orange",
			Theme:      map[string]string{"primary": "#000000", "bogus": "#111111"},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		want := map[string]string{"primary": "#000000"}
		if diff := cmp.Diff(want, doc.Theme); diff != "" {
			t.Errorf("Theme mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("normalizes lists and keeps text as typed", func(t *testing.T) {
		doc, err := svc.Create(ctx, CreateInput{
			TemplateID: "sido-orange",
			Title:      "5 &lt; 6",
			Data: map[string]any{
				"author": "a<b et c>d",
				"themes": "amour, <guerre>, paix",
				"quotes": []any{"x <y", "if a<b && c>d", " "},
				"extra":  "<b>kept</b>",
			},
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if doc.Title != "5 &lt; 6" {
			t.Errorf("Title = %q, want %q", doc.Title, "5 &lt; 6")
		}
		want := map[string]any{
			"author": "a<b et c>d",
			"themes": []string{"amour", "<guerre>", "paix"},
			"quotes": []string{"x <y", "if a<b && c>d"},
			"extra":  "<b>kept</b>",
		}
		if diff := cmp.Diff(want, doc.Data); diff != "" {
			t.Errorf("Data mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("blank title gets the default", func(t *testing.T) {
		doc, err := svc.Create(ctx, CreateInput{TemplateID: "sido-orange", Title: "   "})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if doc.Title != models.DefaultDocumentTitle {
			t.Errorf("Title = %q, want %q", doc.Title, models.DefaultDocumentTitle)
		}
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name       string
			templateID string
			want       error
		}{
			{name: "missing template id", templateID: "", want: ErrTemplateRequired},
			{name: "blank template id", templateID: "  ", want: ErrTemplateRequired},
			{name: "unknown template", templateID: "nonexistent", want: ErrUnknownTemplate},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Create(ctx, CreateInput{TemplateID: tt.templateID})
				if !errors.Is(err, tt.want) {
					t.Errorf("Create() error = %v, want %v", err, tt.want)
				}
			})
		}
	})
}

func TestGet_NotFound(t *testing.T) {
	svc, _ := testService(t, nil)

	for _, id := range []string{"00000000-0000-4000-8000-999999999999", "../etc/passwd", ""} {
		if _, err := svc.Get(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestUpdate(t *testing.T) {
	svc, docs := testService(t, nil)
	ctx := context.Background()

	doc, err := svc.Create(ctx, CreateInput{
		TemplateID: "sido-orange",
		Title:      "Sido",
		Data:       map[string]any{"author": "Colette"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("replaces only provided parts", func(t *testing.T) {
		styles := map[string]models.FieldStyle{
			"author": {FontSize: style.Size(18)},
			"empty":  {},
		}
		got, err := svc.Update(ctx, doc.ID, UpdateInput{Styles: styles})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if got.Title != "Sido" {
			t.Errorf("Title = %q, want unchanged", got.Title)
		}
		if got.Data["author"] != "Colette" {
			t.Errorf("Data changed: %v", got.Data)
		}
		if _, ok := got.Styles["empty"]; ok {
			t.Error("empty style entry should be dropped")
		}
		if !got.UpdatedAt.After(doc.UpdatedAt) {
			t.Errorf("UpdatedAt %v not after %v", got.UpdatedAt, doc.UpdatedAt)
		}
		if got.TemplateID != "sido-orange" {
			t.Errorf("TemplateID = %q", got.TemplateID)
		}
	})

	t.Run("index follows the title", func(t *testing.T) {
		title := "Sido (relu)"
		if _, err := svc.Update(ctx, doc.ID, UpdateInput{Title: &title}); err != nil {
			t.Fatalf("Update: %v", err)
		}
		entries, err := docs.List(ctx)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(entries) != 1 || entries[0].Title != title {
			t.Errorf("index = %+v, want one entry titled %q", entries, title)
		}
	})

	t.Run("markup-like text survives a reload", func(t *testing.T) {
		title := "a<b et c>d"
		_, err := svc.Update(ctx, doc.ID, UpdateInput{
			Title: &title,
			Data:  map[string]any{"author": "a<b et c>d", "quotes": "if a<b && c>d\nR&D"},
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err := svc.Get(ctx, doc.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Title != title {
			t.Errorf("Title = %q, want %q", got.Title, title)
		}
		want := map[string]any{
			"author": "a<b et c>d",
			"quotes": []any{"if a<b && c>d", "R&D"},
		}
		if diff := cmp.Diff(want, got.Data); diff != "" {
			t.Errorf("Data mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := svc.Update(ctx, "00000000-0000-4000-8000-999999999999", UpdateInput{})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Update() error = %v, want ErrNotFound", err)
		}
	})
}

// TestTagsRoundTrip covers the editing path end to end: raw text typed in a
// tags field is stored as a flat trimmed list.
func TestTagsRoundTrip(t *testing.T) {
	svc, _ := testService(t, nil)
	ctx := context.Background()

	doc, err := svc.Create(ctx, CreateInput{TemplateID: "sido-orange"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	edited := doc.Clone()
	edited.Data["themes"] = []string{"a", "b ", "c", ""}
	if _, err := svc.Save(ctx, edited); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := svc.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// Decoded JSON lists come back as []any.
	want := []any{"a", "b", "c"}
	if diff := cmp.Diff(want, got.Data["themes"]); diff != "" {
		t.Errorf("themes mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicate(t *testing.T) {
	svc, _ := testService(t, nil)
	ctx := context.Background()

	src, err := svc.Create(ctx, CreateInput{
		TemplateID: "sido-orange",
		Title:      "Sido",
		Data:       map[string]any{"themes": []any{"enfance"}},
		Styles:     map[string]models.FieldStyle{"title": {TextColor: "#000000"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup, err := svc.Duplicate(ctx, src.ID)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if dup.ID == src.ID {
		t.Error("duplicate should get a new id")
	}
	if dup.Title != "Sido (copie)" {
		t.Errorf("Title = %q, want %q", dup.Title, "Sido (copie)")
	}
	if diff := cmp.Diff(src.Styles, dup.Styles); diff != "" {
		t.Errorf("Styles mismatch (-src +dup):\n%s", diff)
	}

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != dup.ID {
		t.Errorf("List() = %+v, want duplicate first", entries)
	}

	if _, err := svc.Duplicate(ctx, "00000000-0000-4000-8000-999999999999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Duplicate(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestApplyPalette(t *testing.T) {
	svc, _ := testService(t, nil)
	ctx := context.Background()

	doc, err := svc.Create(ctx, CreateInput{TemplateID: "sido-orange"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.ApplyPalette(ctx, doc.ID, "menthe")
	if err != nil {
		t.Fatalf("ApplyPalette: %v", err)
	}
	preset, _ := svc.presets.Get("menthe")
	if diff := cmp.Diff(preset.Theme().Map(), got.Theme); diff != "" {
		t.Errorf("Theme mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.ApplyPalette(ctx, doc.ID, "nope"); !errors.Is(err, theme.ErrUnknownPreset) {
		t.Errorf("ApplyPalette(unknown preset) error = %v, want ErrUnknownPreset", err)
	}
	if _, err := svc.ApplyPalette(ctx, "00000000-0000-4000-8000-999999999999", "menthe"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ApplyPalette(unknown doc) error = %v, want ErrNotFound", err)
	}
}

func TestExport(t *testing.T) {
	doc := &models.Document{ID: "8f14e45f-ceea-467f-a0e6-3b3c6a7f0a11", Title: "Sido, Colette"}
	page := []byte("<!DOCTYPE html><p>fiche</p>")

	t.Run("disabled", func(t *testing.T) {
		svc, _ := testService(t, nil)
		if svc.ExportEnabled() {
			t.Error("ExportEnabled() = true without exporter")
		}
		if _, err := svc.Export(context.Background(), doc, page); !errors.Is(err, ErrExportDisabled) {
			t.Errorf("Export() error = %v, want ErrExportDisabled", err)
		}
	})

	t.Run("uploads the page", func(t *testing.T) {
		exp := &fakeExporter{}
		svc, _ := testService(t, exp)

		url, err := svc.Export(context.Background(), doc, page)
		if err != nil {
			t.Fatalf("Export: %v", err)
		}
		wantKey := "exports/sido-colette-8f14e45f.html"
		if exp.key != wantKey {
			t.Errorf("key = %q, want %q", exp.key, wantKey)
		}
		if url != "https://cdn.example.com/"+wantKey {
			t.Errorf("url = %q", url)
		}
		if !bytes.Equal(exp.body, page) {
			t.Errorf("body = %q", exp.body)
		}
		if exp.contentType != "text/html; charset=utf-8" {
			t.Errorf("contentType = %q", exp.contentType)
		}
	})

	t.Run("upload failure", func(t *testing.T) {
		uploadErr := errors.New("bucket gone")
		svc, _ := testService(t, &fakeExporter{err: uploadErr})
		if _, err := svc.Export(context.Background(), doc, page); !errors.Is(err, uploadErr) {
			t.Errorf("Export() error = %v, want wrapped upload error", err)
		}
	})
}

func TestCountByTemplate(t *testing.T) {
	entries := []models.DocumentIndexEntry{
		{TemplateID: "sido-orange"},
		{TemplateID: "cahiers-mint"},
		{TemplateID: "sido-orange"},
	}
	want := map[string]int{"sido-orange": 2, "cahiers-mint": 1}
	if diff := cmp.Diff(want, CountByTemplate(entries)); diff != "" {
		t.Errorf("CountByTemplate mismatch (-want +got):\n%s", diff)
	}
}

func TestPresets(t *testing.T) {
	svc, _ := testService(t, nil)
	if got := len(svc.Presets()); got != len(theme.DefaultPresets()) {
		t.Errorf("len(Presets()) = %d, want %d", got, len(theme.DefaultPresets()))
	}

	var empty Service
	if empty.Presets() != nil {
		t.Error("Presets() without catalog should be nil")
	}
}
