package escape_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/markup/escape"
)

func TestString_reserved_characters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     string
		quotes bool
		want   string
	}{
		{
			name:   "ampersand",
			in:     "&",
			quotes: true,
			want:   "&amp;",
		},
		{
			name:   "entity text is escaped again",
			in:     "&amp;",
			quotes: true,
			want:   "&amp;amp;",
		},
		{
			name:   "tags",
			in:     "<script>",
			quotes: true,
			want:   "&lt;script&gt;",
		},
		{
			name:   "quotes escaped",
			in:     `say "hi"`,
			quotes: true,
			want:   "say &#34;hi&#34;",
		},
		{
			name:   "quotes kept",
			in:     `say "hi" & <go>`,
			quotes: false,
			want:   `say "hi" &amp; &lt;go&gt;`,
		},
		{
			name:   "multibyte runes untouched",
			in:     "héllo <wörld>",
			quotes: true,
			want:   "héllo &lt;wörld&gt;",
		},
		{
			name:   "empty",
			in:     "",
			quotes: true,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(
				t, tt.want, escape.String(tt.in, tt.quotes),
			)
		})
	}
}

func TestString_no_special_characters_returns_input(
	t *testing.T,
) {
	t.Parallel()

	in := "safe text"

	got := escape.String(in, true)

	assert.Equal(t, in, got)
	assert.False(t, escape.Needed(in, true))
	assert.False(t, escape.Needed(`"`, false))
	assert.True(t, escape.Needed(`"`, true))
}

func TestWrite_matches_string(t *testing.T) {
	t.Parallel()

	in := `<a href="x">Tom & Jerry</a>`

	var buf bytes.Buffer

	n, err := escape.Write(&buf, in, true)
	require.NoError(t, err)

	want := escape.String(in, true)
	assert.Equal(t, want, buf.String())
	assert.Equal(t, len(want), n)
}

type failingWriter struct {
	limit int
}

func (fw *failingWriter) Write(p []byte) (int, error) {
	if len(p) > fw.limit {
		return fw.limit, errors.New("short write")
	}

	fw.limit -= len(p)

	return len(p), nil
}

func TestWrite_propagates_writer_error(t *testing.T) {
	t.Parallel()

	n, err := escape.Write(
		&failingWriter{limit: 3}, "ab<cd", true,
	)

	require.Error(t, err)
	assert.Equal(t, 3, n)
}

func TestUnescape_single_pass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "all entities", in: "&lt;a title=&#34;x&#34;&gt; &amp;", want: `<a title="x"> &`},
		{name: "nested amp", in: "&amp;lt;", want: "&lt;"},
		{name: "double amp", in: "&amp;amp;", want: "&amp;"},
		{name: "nested quote", in: "&amp;#34;", want: "&#34;"},
		{name: "other entities kept", in: "&quot;&nbsp;", want: "&quot;&nbsp;"},
		{name: "no entities", in: "plain", want: "plain"},
		{name: "bare ampersand", in: "a & b", want: "a & b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, escape.Unescape(tt.in))
		})
	}
}

func TestString_output_has_no_reserved_characters(
	t *testing.T,
) {
	t.Parallel()

	got := escape.String(`<<&>>"'&lt;`, true)

	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.NotContains(t, got, `"`)

	// Every remaining ampersand starts an entity.
	for _, part := range strings.Split(got, "&")[1:] {
		assert.True(
			t,
			strings.HasPrefix(part, "amp;") ||
				strings.HasPrefix(part, "lt;") ||
				strings.HasPrefix(part, "gt;") ||
				strings.HasPrefix(part, "#34;"),
			"stray ampersand before %q", part,
		)
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add("")
	f.Add("plain")
	f.Add(`<a href="x">&amp;</a>`)
	f.Add("&#34;&gt;&lt;&amp;")
	f.Add("&amp;lt;")

	f.Fuzz(func(t *testing.T, in string) {
		esc := escape.String(in, true)

		assert.NotContains(t, esc, "<")
		assert.NotContains(t, esc, ">")
		assert.NotContains(t, esc, `"`)
		assert.Equal(t, in, escape.Unescape(esc))

		var buf bytes.Buffer

		_, err := escape.Write(&buf, in, false)
		require.NoError(t, err)
		assert.Equal(t, in, escape.Unescape(buf.String()))
	})
}

func BenchmarkString(b *testing.B) {
	in := strings.Repeat(`<p class="x">Tom & Jerry</p>`, 64)

	b.ReportAllocs()

	for b.Loop() {
		_ = escape.String(in, true)
	}
}
