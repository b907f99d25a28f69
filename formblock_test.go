package formblock_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblock"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/testsupport"
)

const fragment = `<label for="t">Title</label><input type="text" id="t" name="REX_INPUT_VALUE[1][0][title]" value="">`

func TestTransform(t *testing.T) {
	got, err := formblock.Transform(fragment, formblock.NewRecord("4", map[string]any{"title": "Hi"}))
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	want := `<label for="t_4">Title</label><input type="text" id="t_4" name="REX_INPUT_VALUE[1][4][title]" value="Hi"/>`
	if got != want {
		t.Fatalf("transform mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestInspect(t *testing.T) {
	fields, err := formblock.Inspect(fragment)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if len(fields) != 1 || fields[0].Key != "title" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	names, err := fs.Glob(formblock.EmbeddedTemplates(), "*.tpl")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if diff := cmp.Diff([]string{"block.tpl", "list-item.tpl"}, names); diff != "" {
		t.Fatalf("embedded templates mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBlocksWithBuiltinWrapper(t *testing.T) {
	engine, err := formblock.NewTemplateEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	records := []formblock.Record{
		formblock.NewRecord("a", map[string]any{"title": "One"}),
		formblock.NewRecord("b", map[string]any{"title": "Two"}),
	}

	out, err := formblock.RenderBlocks(context.Background(), fragment, records,
		render.WithWrapper(engine, "list-item"),
		render.WithSeparator(""),
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc := testsupport.ParseHTML(t, "<ul>"+out+"</ul>")
	if diff := cmp.Diff([]string{"formblock-item is-first", "formblock-item is-last"}, testsupport.AttrValues(doc, "//li", "class")); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"t_a", "t_b"}, testsupport.AttrValues(doc, "//li/input", "id")); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateEngineStripMarkupFilter(t *testing.T) {
	engine, err := formblock.NewTemplateEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	got, err := engine.RenderString("<h3>{{ block.values.title|strip_markup }}</h3>", map[string]any{
		"block": map[string]any{"values": map[string]any{"title": "<em>Old</em> town"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "<h3>Old town</h3>"; got != want {
		t.Fatalf("strip_markup mismatch\nwant: %q\n got: %q", want, got)
	}
}
