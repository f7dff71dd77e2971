// gharctl is a small CLI for exercising the API from a terminal: sign in,
// browse and search listings, sign out. Tokens persist between invocations in
// a file store so authenticated calls survive process restarts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/FarhanAlam-Official/GharSaathi/internal/api"
	"github.com/FarhanAlam-Official/GharSaathi/internal/auth"
	"github.com/FarhanAlam-Official/GharSaathi/internal/config"
	"github.com/FarhanAlam-Official/GharSaathi/internal/properties"
	"github.com/FarhanAlam-Official/GharSaathi/internal/tokenstore"
	"github.com/FarhanAlam-Official/GharSaathi/pkg/logger"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: gharctl <command> [flags]

commands:
  login     -email <addr> -password <pw>
  register  -email <addr> -password <pw> -first <name> -last <name> -role <TENANT|LANDLORD> [-phone <num>]
  search    [-keyword <kw>] [-city <city>] [-type <type>] [-bedrooms <n>] [-min <price>] [-max <price>] [-page <n>]
  get       -id <property id>
  logout    [-all]
  whoami`)
	os.Exit(2)
}

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	storePath := cfg.Tokens.Path
	if storePath == "" {
		home, _ := os.UserHomeDir()
		storePath = filepath.Join(home, ".gharsaathi", "tokens.json")
	}
	store := tokenstore.NewFileStore(storePath)

	client := api.New(cfg.API.BaseURL, store, api.WithTimeout(cfg.API.Timeout))
	nav := auth.NavigatorFunc(func(route string) {
		logger.Debugf("navigate: %s", route)
	})
	coord := auth.NewCoordinator(client, store, nav)
	coord.Init()
	props := properties.NewService(client)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		_ = fs.Parse(os.Args[2:])
		if *email == "" || *password == "" {
			usage()
		}
		sess, err := coord.Login(ctx, auth.LoginRequest{Email: *email, Password: *password})
		if err != nil {
			logger.Fatalf("login failed: %v", err)
		}
		fmt.Printf("signed in as %s %s (%s)\n", sess.FirstName, sess.LastName, sess.Role)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		first := fs.String("first", "", "first name")
		last := fs.String("last", "", "last name")
		role := fs.String("role", string(auth.RoleTenant), "TENANT or LANDLORD")
		phone := fs.String("phone", "", "phone number")
		_ = fs.Parse(os.Args[2:])
		if *email == "" || *password == "" || *first == "" {
			usage()
		}
		sess, err := coord.Register(ctx, auth.RegisterRequest{
			Email:       *email,
			Password:    *password,
			FirstName:   *first,
			LastName:    *last,
			Role:        auth.Role(*role),
			PhoneNumber: *phone,
		})
		if err != nil {
			logger.Fatalf("registration failed: %v", err)
		}
		fmt.Printf("registered %s (%s)\n", sess.Email, sess.Role)

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		keyword := fs.String("keyword", "", "keyword across title, area and city")
		city := fs.String("city", "", "city filter")
		ptype := fs.String("type", "", "property type filter")
		bedrooms := fs.Int("bedrooms", 0, "minimum bedrooms")
		minPrice := fs.Float64("min", 0, "minimum price")
		maxPrice := fs.Float64("max", 0, "maximum price")
		page := fs.Int("page", 0, "page number")
		_ = fs.Parse(os.Args[2:])

		criteria := properties.SearchCriteria{
			Keyword:      *keyword,
			City:         *city,
			PropertyType: properties.PropertyType(*ptype),
			Page:         *page,
			Size:         properties.DefaultPageSize,
		}
		if *bedrooms > 0 {
			criteria.Bedrooms = bedrooms
		}
		if *minPrice > 0 {
			criteria.MinPrice = minPrice
		}
		if *maxPrice > 0 {
			criteria.MaxPrice = maxPrice
		}

		var res properties.ListResult
		var err error
		if criteria.HasFilters() {
			res, err = props.Search(ctx, criteria)
		} else {
			res, err = props.List(ctx, criteria.Page, criteria.Size, "", "")
		}
		if err != nil {
			logger.Fatalf("search failed: %v", err)
		}
		fmt.Printf("page %d/%d, %d total\n", res.CurrentPage+1, res.TotalPages, res.TotalProperties)
		for _, p := range res.Properties {
			fmt.Printf("  #%d  %-40s %s, %s  Rs %.0f\n", p.ID, p.Title, p.Area, p.City, p.Price)
		}

	case "get":
		fs := flag.NewFlagSet("get", flag.ExitOnError)
		id := fs.Int64("id", 0, "property id")
		_ = fs.Parse(os.Args[2:])
		if *id == 0 {
			usage()
		}
		p, err := props.Get(ctx, *id)
		if err != nil {
			logger.Fatalf("lookup failed: %v", err)
		}
		fmt.Printf("#%d %s\n%s\n%s, %s\nRs %.0f/month, %d bed %d bath\n",
			p.ID, p.Title, p.Description, p.Area, p.City, p.Price, p.Bedrooms, p.Bathrooms)

	case "logout":
		fs := flag.NewFlagSet("logout", flag.ExitOnError)
		all := fs.Bool("all", false, "sign out on every device")
		_ = fs.Parse(os.Args[2:])
		if *all {
			coord.LogoutAll(ctx)
		} else {
			coord.Logout(ctx)
		}
		fmt.Println("signed out")

	case "whoami":
		if sess, ok := coord.Session(); ok {
			fmt.Printf("%s %s <%s> role=%s\n", sess.FirstName, sess.LastName, sess.Email, sess.Role)
		} else if store.AccessToken() != "" {
			fmt.Println("token present (session details resolve on next sign-in)")
		} else {
			fmt.Println("not signed in")
		}

	default:
		usage()
	}
}
