package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestObjectReportsNestedKeys(t *testing.T) {
	t.Parallel()

	schema := Object(
		Key{Name: "line1", Schema: String().Required()},
		Key{Name: "postcode", Schema: String().Required()},
	).Required()

	result := schema.Validate(map[string]any{"line1": "1 Main St"}, nil)
	if result.Valid() {
		t.Fatal("expected missing postcode violation")
	}
	want := []Issue{{Kind: KindRequired, Key: "postcode"}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectIssueOrderFollowsDeclaration(t *testing.T) {
	t.Parallel()

	schema := Object(
		Key{Name: "first", Schema: String().Required()},
		Key{Name: "second", Schema: String().Required()},
	).Required()

	result := schema.Validate(map[string]any{"first": "", "second": ""}, nil)
	if len(result.Issues) != 2 {
		t.Fatalf("issues = %+v", result.Issues)
	}
	if result.Issues[0].Key != "first" || result.Issues[1].Key != "second" {
		t.Fatalf("issue order unstable: %+v", result.Issues)
	}
}

func TestObjectDropsUnknownKeys(t *testing.T) {
	t.Parallel()

	schema := Object(Key{Name: "line1", Schema: String().Required()})
	result := schema.Validate(map[string]any{"line1": "1 Main St", "junk": "x"}, nil)
	if !result.Valid() {
		t.Fatalf("got %+v", result)
	}
	want := map[string]any{"line1": "1 Main St"}
	if diff := cmp.Diff(want, result.Value); diff != "" {
		t.Fatalf("canonical mismatch (-want +got):\n%s", diff)
	}
}

func TestObjectTypeMismatch(t *testing.T) {
	t.Parallel()

	if result := Object().Required().Validate("scalar", nil); result.Valid() || result.Issues[0].Kind != KindObjectBase {
		t.Fatalf("got %+v", result)
	}
}

func TestFileSchema(t *testing.T) {
	t.Parallel()

	schema := File().Required().MaxBytes(1 << 20).Accept("application/pdf")

	upload := func(size any, mime string) map[string]any {
		return map[string]any{"filename": "accounts.pdf", "size": size, "mimeType": mime}
	}

	if result := schema.Validate(upload(2<<20, "application/pdf"), nil); result.Valid() || result.Issues[0].Kind != KindFileMaxSize {
		t.Fatalf("oversize: %+v", result)
	}
	if result := schema.Validate(upload(1024, "image/png"), nil); result.Valid() || result.Issues[0].Kind != KindFileType {
		t.Fatalf("bad mime: %+v", result)
	}
	if result := schema.Validate(upload(1024, "Application/PDF"), nil); !result.Valid() {
		t.Fatalf("mime match is case-insensitive: %+v", result)
	}
	if result := schema.Validate(nil, nil); result.Valid() || result.Issues[0].Kind != KindRequired {
		t.Fatalf("missing upload: %+v", result)
	}
}

func TestObjectBlankMembersCountAsPresent(t *testing.T) {
	t.Parallel()

	schema := Object(
		Key{Name: "firstName", Schema: String().Required()},
		Key{Name: "lastName", Schema: String().Required()},
	).Required()

	// An absent or empty object is a single missing answer.
	for _, raw := range []any{nil, map[string]any{}} {
		result := schema.Validate(raw, nil)
		want := []Issue{{Kind: KindRequired}}
		if diff := cmp.Diff(want, result.Issues); diff != "" {
			t.Fatalf("raw %v (-want +got):\n%s", raw, diff)
		}
	}

	// An object whose members were all left blank reports each missing
	// member, not a single top-level complaint.
	result := schema.Validate(map[string]any{"firstName": " ", "lastName": ""}, nil)
	want := []Issue{
		{Kind: KindRequired, Key: "firstName"},
		{Kind: KindRequired, Key: "lastName"},
	}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
