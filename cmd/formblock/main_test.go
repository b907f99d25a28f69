package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-formblock/internal/prompt"
	"github.com/goliatone/go-formblock/pkg/block"
	"github.com/goliatone/go-formblock/pkg/decorator"
	"github.com/goliatone/go-formblock/pkg/testsupport"
)

const testFragment = `<label for="t">T</label><input type="text" id="t" name="b[0][title]" value="">`

type scriptedDriver struct {
	answers map[string]string
}

func (d scriptedDriver) Ask(_ context.Context, q prompt.Question) (string, error) {
	return d.answers[q.Message], nil
}

func run(t *testing.T, driver prompt.Driver, args ...string) string {
	t.Helper()
	cmd := newCommand(&app{logger: zap.NewNop(), driver: driver})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("formblock %s: %v\nstderr: %s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	fragment := writeFile(t, dir, "form.html", testFragment)
	data := writeFile(t, dir, "blocks.yaml", "- id: a\n  title: First\n- id: b\n  title: \"<b>Second</b>\"\n")

	out := run(t, nil, "render", "--fragment", fragment, "--data", data, "--strip-markup")
	doc := testsupport.ParseHTML(t, out)

	if diff := cmp.Diff([]string{"t_a", "t_b"}, testsupport.AttrValues(doc, "//input", "id")); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"t_a", "t_b"}, testsupport.AttrValues(doc, "//label", "for")); diff != "" {
		t.Fatalf("label targets mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b[a][title]", "b[b][title]"}, testsupport.AttrValues(doc, "//input", "name")); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"First", "Second"}, testsupport.AttrValues(doc, "//input", "value")); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCommandWrapperAndOutputFile(t *testing.T) {
	dir := t.TempDir()
	fragment := writeFile(t, dir, "form.html", testFragment)
	data := writeFile(t, dir, "blocks.json", `[{"id": 1, "title": "One"}, {"id": 2, "title": "Two"}]`)
	wrapper := writeFile(t, dir, "wrap.tpl", `<section data-block="{{ block.id }}" data-index="{{ block.index }}">{{ block.html|safe }}</section>`)
	output := filepath.Join(dir, "out", "blocks.html")

	if out := run(t, nil, "render", "--fragment", fragment, "--data", data, "--wrapper", wrapper, "-o", output); out != "" {
		t.Fatalf("expected no stdout when writing to a file, got %q", out)
	}

	written, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc := testsupport.ParseHTML(t, string(written))
	if diff := cmp.Diff([]string{"1", "2"}, testsupport.AttrValues(doc, "//section", "data-block")); diff != "" {
		t.Fatalf("wrapper ids mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "2"}, testsupport.AttrValues(doc, "//section", "data-index")); diff != "" {
		t.Fatalf("wrapper index mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"One", "Two"}, testsupport.AttrValues(doc, "//section/input", "value")); diff != "" {
		t.Fatalf("wrapped values mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsCommandJSON(t *testing.T) {
	dir := t.TempDir()
	fragment := writeFile(t, dir, "form.html", testFragment+`<input type="hidden" id="REX_MEDIA_1" name="b[0][image]">`)

	var fields []decorator.Field
	if err := json.Unmarshal([]byte(run(t, nil, "fields", "--fragment", fragment, "--json")), &fields); err != nil {
		t.Fatalf("decode fields: %v", err)
	}

	want := []decorator.Field{
		{Kind: decorator.KindInput, Type: "text", ID: "t", Name: "b[0][title]", Key: "title"},
		{Kind: decorator.KindInput, Type: "hidden", ID: "REX_MEDIA_1", Name: "b[0][image]", Key: "image", Skipped: true},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsCommandTable(t *testing.T) {
	dir := t.TempDir()
	fragment := writeFile(t, dir, "form.html", testFragment)

	out := run(t, nil, "fields", "--fragment", fragment)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", out)
	}
	if cols := strings.Fields(lines[1]); len(cols) < 5 || cols[1] != "title" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}

func TestPromptCommand(t *testing.T) {
	dir := t.TempDir()
	fragment := writeFile(t, dir, "form.html", testFragment)
	valuesOut := filepath.Join(dir, "answers.yaml")

	driver := scriptedDriver{answers: map[string]string{"title": "Typed"}}
	out := run(t, driver, "prompt", "--fragment", fragment, "--id", "9", "--values-out", valuesOut)

	doc := testsupport.ParseHTML(t, out)
	input := testsupport.MustFind(t, doc, "//input")
	if value, _ := testsupport.Attr(input, "value"); value != "Typed" {
		t.Fatalf("expected prompted value, got %q", value)
	}
	if name, _ := testsupport.Attr(input, "name"); name != "b[9][title]" {
		t.Fatalf("expected reindexed name, got %q", name)
	}

	records, err := block.LoadFile(valuesOut)
	if err != nil {
		t.Fatalf("load answers: %v", err)
	}
	if len(records) != 1 || records[0].ID() != "9" {
		t.Fatalf("unexpected answer records: %+v", records)
	}
	if got := records[0].Values()["title"]; got != "Typed" {
		t.Fatalf("expected stored answer, got %v", got)
	}
}

func TestRenderCommandBuiltinWrapper(t *testing.T) {
	dir := t.TempDir()
	fragment := writeFile(t, dir, "form.html", testFragment)
	data := writeFile(t, dir, "blocks.yaml", "- title: First\n- title: Second\n")

	out := run(t, nil, "render", "--fragment", fragment, "--data", data, "--wrapper", "block", "--separator", "")
	doc := testsupport.ParseHTML(t, out)
	if diff := cmp.Diff([]string{"1", "2"}, testsupport.AttrValues(doc, "//div", "data-block-id")); diff != "" {
		t.Fatalf("builtin wrapper ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCommandGlobalsAndFilters(t *testing.T) {
	dir := t.TempDir()
	fragment := writeFile(t, dir, "form.html", testFragment)
	data := writeFile(t, dir, "blocks.yaml", "- id: a\n  title: \"<b>Bold</b> move\"\n")
	wrapper := writeFile(t, dir, "card.tpl", `<article data-site="{{ site }}" title="{{ block.values.title|strip_markup }}">{{ block.html|safe }}</article>`)
	cfgFile := writeFile(t, dir, "formblock.yaml", "globals:\n  site: Example\n")

	out := run(t, nil, "--config", cfgFile, "render", "--fragment", fragment, "--data", data, "--wrapper", wrapper)
	doc := testsupport.ParseHTML(t, out)
	article := testsupport.MustFind(t, doc, "//article")
	if site, _ := testsupport.Attr(article, "data-site"); site != "Example" {
		t.Fatalf("expected config global in wrapper, got %q", site)
	}
	if title, _ := testsupport.Attr(article, "title"); title != "Bold move" {
		t.Fatalf("expected stripped title, got %q", title)
	}
}

func TestCommandsReportMissingFlags(t *testing.T) {
	dir := t.TempDir()
	fragment := writeFile(t, dir, "form.html", testFragment)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "render fragment", args: []string{"render", "--data", "x.yaml"}, want: "--fragment is required"},
		{name: "render data", args: []string{"render", "--fragment", fragment}, want: "--data is required"},
		{name: "prompt id", args: []string{"prompt", "--fragment", fragment}, want: "--id is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newCommand(&app{logger: zap.NewNop()})
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			err := cmd.ExecuteContext(context.Background())
			if err == nil || err.Error() != tt.want {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
		})
	}
}
