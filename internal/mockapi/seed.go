package mockapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rshade/postdeck/internal/api"
)

var (
	firstNames = []string{"Ada", "Grace", "Linus", "Ken", "Barbara", "Dennis", "Margaret", "Edsger", "Frances", "Rob"}
	lastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Thompson", "Liskov", "Ritchie", "Hamilton", "Dijkstra", "Allen", "Pike"}
	cities     = []string{"Lagos", "Austin", "Oslo", "Kyoto", "Lyon"}
	states     = []string{"LA", "TX", "OS", "KY", "RH"}
)

// Seed builds n deterministic users, each owning postsPerUser posts.
func Seed(n, postsPerUser int) ([]api.User, []api.Post) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	users := make([]api.User, 0, n)
	posts := make([]api.Post, 0, n*postsPerUser)
	postID := 1

	for i := range n {
		first := firstNames[i%len(firstNames)]
		last := lastNames[(i/len(firstNames)+i)%len(lastNames)]
		id := api.ID(fmt.Sprintf("u%03d", i+1))
		created := base.Add(time.Duration(i) * time.Hour)

		users = append(users, api.User{
			ID:       id,
			Name:     first + " " + last,
			Email:    fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			Username: fmt.Sprintf("%s%d", strings.ToLower(first), i+1),
			Phone:    fmt.Sprintf("+1-555-%04d", i+1),
			Address: api.Address{
				ID:      api.ID(fmt.Sprintf("a%03d", i+1)),
				Street:  fmt.Sprintf("%d Main Street", 100+i),
				City:    cities[i%len(cities)],
				State:   states[i%len(states)],
				Zipcode: fmt.Sprintf("%05d", 10000+i),
				UserID:  id,
			},
			CreatedAt: created,
			UpdatedAt: created,
		})

		for j := range postsPerUser {
			posts = append(posts, api.Post{
				ID:        api.ID(strconv.Itoa(postID)),
				UserID:    id,
				Title:     fmt.Sprintf("Note %d from %s", j+1, first),
				Body:      fmt.Sprintf("%s wrote this post while testing the backend.", first),
				CreatedAt: created.Add(time.Duration(j) * time.Minute),
			})
			postID++
		}
	}
	return users, posts
}
