package loq_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/zephyrtronium/loq"
)

func TestRender(t *testing.T) {
	cases := []struct {
		name string
		file string
		src  string
		want string
	}{
		{
			"line",
			"",
			"1+(2",
			"[ERROR]:  Expected ')' to close the parenthesized expression, found nothing instead.\n    1+(2\n        ^\n",
		},
		{
			"char",
			"",
			"ab $",
			"[ERROR]:  Found unexpected '$'.\n    ab $\n       ^\n",
		},
		{
			"tab",
			"",
			"\tx y",
			"[ERROR]:  Found unexpected identifier \"y\" after x with no operator between them.\n    \tx y\n    \t  ^\n",
		},
		{
			"named",
			"in.loq",
			"f(a,b)=a",
			"[ERROR] in.loq:1:1:  Function f has unused parameter b in body a.\n    f(a,b)=a\n    ^\n",
		},
		{
			"multiline",
			"",
			"\n\n  1 2",
			"[ERROR] 3:5:  Found unexpected number literal \"2\" after 1 with no operator between them.\n      1 2\n        ^\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := loq.ParseString(c.src, nil)
			if err == nil {
				t.Fatal("no error")
			}
			if got := loq.Render(c.file, c.src, err); got != c.want {
				t.Errorf("wrong rendering:\n%s\nwant:\n%s", got, c.want)
			}
		})
	}
}

func TestRenderPlainError(t *testing.T) {
	got := loq.Render("x", "src", errors.New("oops"))
	if want := "[ERROR]:  oops\n"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestDiagnoster(t *testing.T) {
	var b strings.Builder
	d := loq.NewDiagnoster(&b)
	d.Logf(loq.LevelInfo, "debug mode %s", "on")
	d.Logf(loq.LevelWarning, "careful")
	_, err := loq.ParseString("$", nil, loq.ReportWith(d))
	if err == nil {
		t.Fatal("no error")
	}
	want := "[INFO]:  debug mode on\n[WARN]:  careful\n[ERROR]:  Found unexpected '$'.\n    $\n    ^\n"
	if got := b.String(); got != want {
		t.Errorf("wrong output:\n%s\nwant:\n%s", got, want)
	}
}

func TestDiagnosterColor(t *testing.T) {
	defer func(v bool) { color.NoColor = v }(color.NoColor)
	color.NoColor = false
	var b strings.Builder
	d := loq.NewDiagnoster(&b)
	d.Color = true
	d.Logf(loq.LevelError, "bad")
	got := b.String()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("no color codes in %q", got)
	}
	if !strings.HasSuffix(got, ":  bad\n") {
		t.Errorf("wrong message in %q", got)
	}
}

func TestNilDiagnoster(t *testing.T) {
	var d *loq.Diagnoster
	d.Logf(loq.LevelInfo, "nothing")
	d.Report("", "x", errors.New("nothing"))
}
