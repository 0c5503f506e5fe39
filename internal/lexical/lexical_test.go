package lexical

import "testing"

func TestStripVkPrefix(t *testing.T) {
	cases := map[string]string{
		"VkBuffer":        "Buffer",
		"vkCreateBuffer":  "CreateBuffer",
		"VK_SUCCESS":      "SUCCESS",
		"VkResult":        "Result",
		"NoPrefixHere":    "NoPrefixHere",
	}
	for in, want := range cases {
		if got := StripVkPrefix(in); got != want {
			t.Errorf("StripVkPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToUpperCamel(t *testing.T) {
	cases := map[string]string{
		"BUFFER_CREATE_INFO": "BufferCreateInfo",
		"R8G8B8_UNORM":       "R8G8B8Unorm",
		"create_buffer":      "CreateBuffer",
	}
	for in, want := range cases {
		if got := ToUpperCamel(in); got != want {
			t.Errorf("ToUpperCamel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestToLowerCamel(t *testing.T) {
	if got := ToLowerCamel("CREATE_BUFFER"); got != "createBuffer" {
		t.Errorf("ToLowerCamel(%q) = %q, want %q", "CREATE_BUFFER", got, "createBuffer")
	}
	if got := ToLowerCamel(""); got != "" {
		t.Errorf("ToLowerCamel(\"\") = %q, want empty", got)
	}
}

func TestExtractTag(t *testing.T) {
	base, tag := ExtractTag("SOME_ENUM_VALUE_EXT", nil)
	if base != "SOME_ENUM_VALUE" || tag != "EXT" {
		t.Errorf("ExtractTag(SOME_ENUM_VALUE_EXT) = (%q, %q), want (SOME_ENUM_VALUE, EXT)", base, tag)
	}
	base, tag = ExtractTag("PlainName", nil)
	if base != "PlainName" || tag != "" {
		t.Errorf("ExtractTag(PlainName) = (%q, %q), want (PlainName, \"\")", base, tag)
	}
	base, tag = ExtractTag("NO_TAG_HERE", nil)
	if tag != "" || base != "NO_TAG_HERE" {
		t.Errorf("ExtractTag(NO_TAG_HERE) = (%q, %q), want (NO_TAG_HERE, \"\")", base, tag)
	}
}

func TestEnumValueCppName(t *testing.T) {
	cases := []struct {
		base []string
		c    string
		want string
	}{
		{[]string{"Result"}, "VK_SUCCESS", "eSuccess"},
		{[]string{"Format"}, "VK_FORMAT_R8G8B8_UNORM", "eR8G8B8Unorm"},
		{[]string{"Structure", "Type"}, "VK_STRUCTURE_TYPE_BUFFER_CREATE_INFO_KHR", "eBufferCreateInfoKHR"},
	}
	for _, c := range cases {
		if got := EnumValueCppName(c.base, c.c); got != c.want {
			t.Errorf("EnumValueCppName(%v, %q) = %q, want %q", c.base, c.c, got, c.want)
		}
	}
}

func TestNormalizePointerPostfix(t *testing.T) {
	if got := NormalizePointerPostfix("**"); got != "* *" {
		t.Errorf("NormalizePointerPostfix(**) = %q, want %q", got, "* *")
	}
	if got := NormalizePointerPostfix("*"); got != "*" {
		t.Errorf("NormalizePointerPostfix(*) = %q, want %q", got, "*")
	}
}
