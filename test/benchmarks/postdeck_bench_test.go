package benchmarks_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rshade/postdeck/internal/api"
	"github.com/rshade/postdeck/internal/cli/pagination"
	"github.com/rshade/postdeck/internal/mockapi"
	"github.com/rshade/postdeck/internal/notify"
	"github.com/rshade/postdeck/internal/tui"
)

// BenchmarkComputeWindow benchmarks the page-number window across a large listing.
func BenchmarkComputeWindow(b *testing.B) {
	b.ReportAllocs()
	const total = 10000
	for i := 0; i < b.N; i++ {
		_ = pagination.ComputeWindow(i%total+1, total, pagination.DefaultPick)
	}
}

// BenchmarkRenderPaginator benchmarks the styled paginator the browser draws.
func BenchmarkRenderPaginator(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = tui.RenderPaginator(i%500+1, 500, pagination.DefaultPick)
	}
}

// BenchmarkReduce_AddRemove benchmarks a burst of notifications being added
// and then removed from the front.
func BenchmarkReduce_AddRemove(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		var state notify.State
		var err error
		for j := 0; j < 20; j++ {
			state, err = notify.Reduce(state, notify.Add(fmt.Sprintf("message %d", j), j%2 == 0))
			if err != nil {
				b.Fatal(err)
			}
		}
		for state.Len() > 0 {
			if state, err = notify.Reduce(state, notify.Remove(0)); err != nil {
				b.Fatal(err)
			}
		}
	}
}

// BenchmarkDecode_UsersPage benchmarks decoding a 100-user page envelope.
func BenchmarkDecode_UsersPage(b *testing.B) {
	users, _ := mockapi.Seed(100, 0)
	data, err := json.Marshal(api.Envelope[api.UsersPage]{
		Success: true,
		Message: "Users fetched successfully",
		Data:    api.UsersPage{Users: users, Count: 100, TotalPages: 1, Page: 1, Limit: 100},
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var env api.Envelope[api.UsersPage]
		if err := json.Unmarshal(data, &env); err != nil {
			b.Fatal(err)
		}
	}
}
