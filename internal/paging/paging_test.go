package paging

import (
	"errors"
	"testing"

	"github.com/five82/storefront/internal/params"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		perPage int
		want    int
	}{
		{"partial last page", 25, 10, 3},
		{"exact pages", 30, 10, 3},
		{"empty", 0, 10, 0},
		{"single item", 1, 10, 1},
		{"one per page", 7, 1, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TotalPages(tt.total, tt.perPage)
			if err != nil {
				t.Fatalf("TotalPages(%d, %d) returned error: %v", tt.total, tt.perPage, err)
			}
			if got != tt.want {
				t.Fatalf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
			}
		})
	}
}

func TestTotalPages_InvalidArgument(t *testing.T) {
	for _, perPage := range []int{0, -5} {
		if _, err := TotalPages(10, perPage); !errors.Is(err, params.ErrInvalidArgument) {
			t.Fatalf("TotalPages(10, %d) error = %v, want ErrInvalidArgument", perPage, err)
		}
	}
	if _, err := TotalPages(-1, 10); !errors.Is(err, params.ErrInvalidArgument) {
		t.Fatalf("TotalPages(-1, 10) error = %v, want ErrInvalidArgument", err)
	}
}

func TestControls_Predicates(t *testing.T) {
	tests := []struct {
		name                    string
		page, total, perPage    int
		first, prev, next, last bool
	}{
		{"first page of three", 1, 25, 10, false, false, true, true},
		{"middle page", 2, 25, 10, true, true, true, true},
		{"last page", 3, 25, 10, true, true, false, false},
		{"single page", 1, 1, 10, false, false, false, false},
		{"no results", 1, 0, 10, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.page, tt.total, tt.perPage)
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			if c.FirstEnabled() != tt.first || c.PrevEnabled() != tt.prev ||
				c.NextEnabled() != tt.next || c.LastEnabled() != tt.last {
				t.Fatalf("controls = first:%v prev:%v next:%v last:%v, want %v %v %v %v",
					c.FirstEnabled(), c.PrevEnabled(), c.NextEnabled(), c.LastEnabled(),
					tt.first, tt.prev, tt.next, tt.last)
			}
		})
	}
}

func TestControls_Targets(t *testing.T) {
	c, err := New(2, 25, 10)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	cases := map[string]struct {
		got  params.Mapping
		want string
	}{
		"first": {c.First(), "1"},
		"prev":  {c.Prev(), "1"},
		"next":  {c.Next(), "3"},
		"last":  {c.Last(), "3"},
	}
	for name, tc := range cases {
		if len(tc.got) != 1 || tc.got[params.KeyPage] != tc.want {
			t.Fatalf("%s = %v, want page=%s only", name, tc.got, tc.want)
		}
	}
	if got := c.Label(); got != "Page 2 of 3" {
		t.Fatalf("Label = %q, want %q", got, "Page 2 of 3")
	}
}

func TestFromQuery(t *testing.T) {
	q, err := params.ParseQuery(params.Mapping{
		params.KeyCategory:     "shoes",
		params.KeyPage:         "2",
		params.KeyItemsPerPage: "10",
	})
	if err != nil {
		t.Fatalf("ParseQuery returned error: %v", err)
	}
	c, err := FromQuery(q, 25)
	if err != nil {
		t.Fatalf("FromQuery returned error: %v", err)
	}
	if c.TotalPages != 3 {
		t.Fatalf("TotalPages = %d, want 3", c.TotalPages)
	}
	if !c.FirstEnabled() || !c.PrevEnabled() || !c.NextEnabled() || !c.LastEnabled() {
		t.Fatalf("controls on page 2 of 3 should all be enabled: %+v", c)
	}
}

func TestNew_RejectsNonPositivePage(t *testing.T) {
	if _, err := New(0, 10, 10); !errors.Is(err, params.ErrInvalidArgument) {
		t.Fatalf("New(0, ...) error = %v, want ErrInvalidArgument", err)
	}
}
