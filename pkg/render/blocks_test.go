package render_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formblock/pkg/block"
	"github.com/goliatone/go-formblock/pkg/decorator"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formblock/pkg/testsupport"
)

const fragment = `<label for="title">Title</label><input type="text" id="title" name="REX_INPUT_VALUE[1][0][title]" value="">`

func TestRender_Separator(t *testing.T) {
	records := []block.Record{
		block.NewRecord("1", map[string]any{"title": "First"}),
		block.NewRecord("2", map[string]any{"title": "Second"}),
	}

	got, err := render.Blocks(context.Background(), fragment, records, render.WithSeparator("<hr>"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<label for="title_1">Title</label><input type="text" id="title_1" name="REX_INPUT_VALUE[1][1][title]" value="First"/>` +
		`<hr>` +
		`<label for="title_2">Title</label><input type="text" id="title_2" name="REX_INPUT_VALUE[1][2][title]" value="Second"/>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rendered blocks mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Empty(t *testing.T) {
	got, err := render.New().Render(context.Background(), fragment, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRender_WrapperTemplate(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{
		"block.tpl": {Data: []byte(`<li data-block="{{ block.id }}" data-pos="{{ block.index }}/{{ blocks.count }}">{{ block.html|safe }}</li>`)},
	}))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	records := []block.Record{
		block.NewRecord("a", map[string]any{"title": "One"}),
		block.NewRecord("b", map[string]any{"title": "Two"}),
	}
	got, err := render.Blocks(context.Background(), fragment, records,
		render.WithWrapper(engine, "block"),
		render.WithSeparator(""),
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc := testsupport.ParseHTML(t, got)
	if diff := cmp.Diff([]string{"a", "b"}, testsupport.AttrValues(doc, "//li", "data-block")); diff != "" {
		t.Fatalf("wrapper ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1/2", "2/2"}, testsupport.AttrValues(doc, "//li", "data-pos")); diff != "" {
		t.Fatalf("wrapper positions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"title_a", "title_b"}, testsupport.AttrValues(doc, "//li/input", "id")); diff != "" {
		t.Fatalf("decorated ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_InlineWrapper(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	got, err := render.Blocks(context.Background(), `<input name="x[1][0][v]">`,
		[]block.Record{block.NewRecord("7", map[string]any{"v": "ok"})},
		render.WithWrapper(engine, `{% if block.first %}[{{ block.values.v }}]{% endif %}{{ block.html|safe }}`),
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := `[ok]<input name="x[1][7][v]" value="ok"/>`; got != want {
		t.Fatalf("inline wrapper mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestRender_UsesInjectedDecorator(t *testing.T) {
	dec := decorator.New(decorator.WithSkipMarkers("title"))
	got, err := render.Blocks(context.Background(), fragment,
		[]block.Record{block.NewRecord("3", nil)},
		render.WithDecorator(dec),
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc := testsupport.ParseHTML(t, got)
	if diff := cmp.Diff([]string{"title"}, testsupport.AttrValues(doc, "//input", "id")); diff != "" {
		t.Fatalf("skip markers ignored (-want +got):\n%s", diff)
	}
}

func TestRender_Errors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	items := render.Items([]block.Record{block.NewRecord("1", nil)})

	if _, err := render.New().Render(ctx, fragment, items); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := render.New(render.WithWrapper(nil, "block")).Render(context.Background(), fragment, items); err == nil {
		t.Fatalf("expected error for wrapper without engine")
	}
	if _, err := render.New().Render(context.Background(), fragment, []block.Item{nil}); err == nil {
		t.Fatalf("expected error for nil item")
	}
}
