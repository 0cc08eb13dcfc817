package catapult

import "testing"

func TestAppendJSONStringEscaping(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{"a\"b", `"a\"b"`},
		{"a\\b", `"a\\b"`},
		{"a\nb", `"a\nb"`},
		{"a\rb", `"a\rb"`},
		{"a\tb", `"a\tb"`},
		{"a\bb", `"a\bb"`},
		{"a\x01b", "\"a\\u0001b\""},
		{"a\x1fb", "\"a\\u001fb\""},
		{"unicode: \xc3\xa9", "\"unicode: \xc3\xa9\""}, // verbatim, not validated
	}
	for _, c := range cases {
		got := string(AppendJSONString(nil, c.in))
		if got != c.want {
			t.Errorf("AppendJSONString(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestDatumAppendJSON(t *testing.T) {
	cases := []struct {
		d    Datum
		want string
	}{
		{AbsentDatum, "null"},
		{Int(42), "42"},
		{Int(-7), "-7"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{String("hi"), `"hi"`},
		{Float(1.5), "1.5"},
	}
	for _, c := range cases {
		got := string(c.d.AppendJSON(nil))
		if got != c.want {
			t.Errorf("Datum.AppendJSON() = %s, want %s", got, c.want)
		}
	}
}

func TestAppendArgsObjectOrderPreserved(t *testing.T) {
	attrs := Attrs{
		{Key: "b", Value: Int(2)},
		{Key: "a", Value: Int(1)},
	}
	got := string(AppendArgsObject(nil, attrs))
	want := `{"b":2,"a":1}`
	if got != want {
		t.Fatalf("AppendArgsObject() = %s, want %s", got, want)
	}
}
