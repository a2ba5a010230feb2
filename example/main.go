package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gertd/go-pluralize"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-urlkit"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const pageSize = 2

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type UserStore struct {
	sync.RWMutex
	users map[string]User
}

func NewUserStore() *UserStore {
	store := &UserStore{users: map[string]User{}}
	for _, u := range []struct {
		name   string
		email  string
		active bool
	}{
		{"Julie Smith", "julie.smith@example.com", true},
		{"Jose Bates", "jose.bates@example.com", true},
		{"Brad Miles", "brad.miles@example.com", false},
	} {
		id, _ := hashid.New(u.email)
		store.users[id] = User{
			ID:        id,
			Name:      u.name,
			Email:     u.email,
			Active:    u.active,
			CreatedAt: time.Now(),
		}
	}
	return store
}

// list returns users sorted by name, filtered by term and active flag.
func (s *UserStore) list(term string, onlyActive bool) []User {
	s.RLock()
	defer s.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if onlyActive && !u.Active {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(term)) {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *UserStore) get(id string) (User, bool) {
	s.RLock()
	defer s.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

type ProfileQuery struct {
	ID  string `query:"id" validate:"required"`
	Tab string `query:"tab" validate:"omitempty,oneof=posts about"`
}

// Links groups the builders the handlers link to.
type Links struct {
	*urlkit.Builder
}

func newLinks(logger urlkit.Logger) Links {
	docs := urlkit.New(urlkit.Config{Prefix: "/docs-site", Logger: logger}).
		Add("/").
		Add("/getting-started")

	app := urlkit.New(urlkit.Config{Prefix: "/app", Logger: logger}).
		Add("/").
		Add("/users", urlkit.Coerced(urlkit.Fields{
			"page":   urlkit.FieldNumber,
			"q":      urlkit.FieldString,
			"active": urlkit.FieldBoolean,
		})).
		Add("/user-profile", urlkit.Validated(urlkit.Struct[ProfileQuery]())).
		Use("docs", docs)

	return Links{app}
}

func newApp(store *UserStore, routes Links) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "urlkit - Fiber",
	})

	app.Use(requestID)

	plural := pluralize.NewClient()
	users := routes.MustRoute("users")
	profile := routes.MustRoute("userProfile")

	app.Get(routes.Routes().Get(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"routes": routes.Paths(),
		})
	})

	app.Get(users.Get(), func(c *fiber.Ctx) error {
		query := users.Parse(urlkit.FromFiber(c))

		page := query.Int("page")
		if page < 1 {
			page = 1
		}

		all := store.list(query.String("q"), query.Bool("active"))
		start := min((page-1)*pageSize, len(all))
		end := min(start+pageSize, len(all))

		items := make([]fiber.Map, 0, end-start)
		for _, u := range all[start:end] {
			items = append(items, fiber.Map{
				"user":    u,
				"profile": profile.MustQuery(urlkit.Q("id", u.ID)),
			})
		}

		res := fiber.Map{
			"items":   items,
			"summary": plural.Pluralize("user", len(all), true),
		}
		if end < len(all) {
			params := urlkit.Q("page", page+1)
			if q := query.String("q"); q != "" {
				params = params.Set("q", q)
			}
			if query.Bool("active") {
				params = params.Set("active", true)
			}
			next, err := users.Query(params)
			if err != nil {
				return err
			}
			res["next"] = next
		}
		return c.JSON(res)
	})

	app.Get(profile.Get(), func(c *fiber.Ctx) error {
		values := profile.Parse(urlkit.FromFiber(c))

		query, err := urlkit.Decode[ProfileQuery](values)
		if err != nil || query.ID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "missing or invalid user id",
			})
		}

		user, ok := store.get(query.ID)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		}

		return c.JSON(fiber.Map{
			"user": user,
			"tab":  query.Tab,
			"back": users.Get(),
			"docs": routes.MustRoute("docs", "gettingStarted").Get(),
		})
	})

	return app
}

func requestID(c *fiber.Ctx) error {
	id := c.Get(fiber.HeaderXRequestID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(fiber.HeaderXRequestID, id)
	return c.Next()
}

func main() {
	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Panic(err)
	}
	defer zl.Sync()

	routes := newLinks(urlkit.NewZapLogger(zl))
	routes.PrintRoutes()

	app := newApp(NewUserStore(), routes)

	go func() {
		if err := app.Listen(":9092"); err != nil {
			log.Panic(err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Panic(err)
	}
}
