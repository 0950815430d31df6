package ocm

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func fakeDirectory(fn captureFunc) *CLIDirectory {
	return &CLIDirectory{Binary: "ocm", Timeout: time.Second, capture: fn}
}

func TestList_PassesEachFilterAsSearchParameter(t *testing.T) {
	cases := []struct {
		name    string
		filters []string
	}{
		{name: "none", filters: nil},
		{name: "one", filters: []string{"state is not 'ready'"}},
		{name: "several", filters: []string{"region.id = 'us-east-1'", "state = 'ready'", "managed = 'true'"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotArgs []string
			d := fakeDirectory(func(_ context.Context, bin string, args []string) (string, error) {
				if bin != "ocm" {
					t.Fatalf("expected ocm binary, got %q", bin)
				}
				gotArgs = args
				return "", nil
			})
			if _, err := d.List(context.Background(), tc.filters); err != nil {
				t.Fatalf("List error: %v", err)
			}
			want := []string{"list", "clusters"}
			for _, f := range tc.filters {
				want = append(want, "--parameter", "search="+f)
			}
			if !reflect.DeepEqual(gotArgs, want) {
				t.Fatalf("args mismatch:\n got %v\nwant %v", gotArgs, want)
			}
		})
	}
}

func TestList_ParsesClusters(t *testing.T) {
	d := fakeDirectory(func(context.Context, string, []string) (string, error) {
		return "ID NAME\nabc prod-east\n", nil
	})
	got, err := d.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "abc" || got[0].Name != "prod-east" {
		t.Fatalf("unexpected clusters: %+v", got)
	}
}

func TestList_CommandFailure(t *testing.T) {
	d := fakeDirectory(func(context.Context, string, []string) (string, error) {
		return "token expired", fmt.Errorf("exit status 1")
	})
	if _, err := d.List(context.Background(), nil); err == nil {
		t.Fatal("expected error when the inventory command fails")
	}
}

func TestResolveExternalID_Present(t *testing.T) {
	var gotArgs []string
	d := fakeDirectory(func(_ context.Context, _ string, args []string) (string, error) {
		gotArgs = args
		return `{"id":"abc","external_id":"11111111-2222-3333-4444-555555555555"}`, nil
	})
	ext, ok, err := d.ResolveExternalID(context.Background(), "abc")
	if err != nil {
		t.Fatalf("ResolveExternalID error: %v", err)
	}
	if !ok || ext != "11111111-2222-3333-4444-555555555555" {
		t.Fatalf("unexpected result ext=%q ok=%v", ext, ok)
	}
	want := []string{"get", "cluster", "abc"}
	if !reflect.DeepEqual(gotArgs, want) {
		t.Fatalf("args mismatch: got %v want %v", gotArgs, want)
	}
}

func TestResolveExternalID_NullSentinel(t *testing.T) {
	for _, body := range []string{
		`{"id":"abc","external_id":"null"}`,
		`{"id":"abc","external_id":""}`,
		`{"id":"abc"}`,
	} {
		d := fakeDirectory(func(context.Context, string, []string) (string, error) {
			return body, nil
		})
		_, ok, err := d.ResolveExternalID(context.Background(), "abc")
		if err != nil {
			t.Fatalf("ResolveExternalID error for %s: %v", body, err)
		}
		if ok {
			t.Fatalf("expected ok=false for %s", body)
		}
	}
}

func TestResolveExternalID_LookupFailure(t *testing.T) {
	d := fakeDirectory(func(context.Context, string, []string) (string, error) {
		return "", fmt.Errorf("exit status 1")
	})
	_, ok, err := d.ResolveExternalID(context.Background(), "abc")
	if err == nil {
		t.Fatal("expected error from failed lookup")
	}
	if ok {
		t.Fatal("expected ok=false on lookup failure")
	}
}

func TestResolveExternalID_BadJSON(t *testing.T) {
	d := fakeDirectory(func(context.Context, string, []string) (string, error) {
		return "not json", nil
	})
	if _, _, err := d.ResolveExternalID(context.Background(), "abc"); err == nil {
		t.Fatal("expected parse error for non-JSON record")
	}
}
