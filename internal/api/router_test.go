package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/flash"
	"github.com/nekogravitycat/venue-booking-backend/internal/review"
	"github.com/nekogravitycat/venue-booking-backend/internal/user"
	"github.com/nekogravitycat/venue-booking-backend/internal/venue"
	"github.com/nekogravitycat/venue-booking-backend/internal/wishlist"
)

type testApp struct {
	router *gin.Engine
	store  *memoryStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemoryStore()
	venueService := venue.NewService(memoryVenues{store})
	_, err := venue.Seed(context.Background(), memoryVenues{store})
	require.NoError(t, err)

	userService := user.NewService(memoryUsers{store}, auth.NewBcryptPasswordHasher(4), nil)
	router := NewRouter(Config{
		Sessions:        auth.NewSessionStore(auth.NewJWTManager("test-secret", time.Hour), auth.NewMemoryRevoker(), userService, false),
		UserService:     userService,
		VenueService:    venueService,
		ReviewService:   review.NewService(memoryReviews{store}, venueService),
		WishlistService: wishlist.NewService(memoryWishlist{store}, venueService),
		BookingService:  booking.NewService(memoryBookings{store}, venueService, nil, nil),
	})
	return &testApp{router: router, store: store}
}

func (a *testApp) venueByName(t *testing.T, name string) *venue.Venue {
	t.Helper()
	for _, v := range a.store.venues {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("venue %q not seeded", name)
	return nil
}

// client keeps cookies between requests like a browser would.
type client struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) newClient() *client {
	return &client{app: a, cookies: make(map[string]*http.Cookie)}
}

func (cl *client) executeRequest(method, path string, form url.Values, accept string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	cl.app.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = &http.Cookie{Name: c.Name, Value: c.Value}
	}
	return w
}

func (cl *client) getJSON(path string) *httptest.ResponseRecorder {
	return cl.executeRequest(http.MethodGet, path, nil, gin.MIMEJSON)
}

func (cl *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return cl.executeRequest(http.MethodPost, path, form, gin.MIMEJSON)
}

// login registers the user and starts a session.
func (cl *client) login(t *testing.T, username string) {
	t.Helper()

	w := cl.post("/register", url.Values{
		"username":         {username},
		"password":         {"s3cret-pass"},
		"confirm_password": {"s3cret-pass"},
	})
	require.Equal(t, http.StatusFound, w.Code, "Register should succeed")
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = cl.post("/login", url.Values{"username": {username}, "password": {"s3cret-pass"}})
	require.Equal(t, http.StatusFound, w.Code, "Login should succeed")
	require.Equal(t, "/home", w.Header().Get("Location"))
	require.Contains(t, cl.cookies, auth.SessionCookieName)
}

type document struct {
	Username string          `json:"username"`
	Messages []flash.Message `json:"messages"`
	Data     json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) document {
	t.Helper()
	var doc document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(doc.Data, data))
	}
	return doc
}

type formJSON struct {
	Fields []struct {
		Name   string   `json:"name"`
		Value  string   `json:"value"`
		Errors []string `json:"errors"`
	} `json:"fields"`
	NonField []string `json:"non_field_errors"`
}

func (f formJSON) errors(name string) []string {
	for _, field := range f.Fields {
		if field.Name == name {
			return field.Errors
		}
	}
	return nil
}

func TestAnonymousAccess(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()

	for _, path := range []string{"/", "/home", "/catalog", "/wishlist", "/venue/" + app.store.venues[0].ID} {
		w := cl.getJSON(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}

	w := cl.getJSON("/login")
	assert.Equal(t, http.StatusOK, w.Code)

	w = cl.getJSON("/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := auth.NewSessionStore(auth.NewJWTManager("test-secret", time.Hour), nil, nil, false)

	t.Run("healthy", func(t *testing.T) {
		r := NewRouter(Config{Sessions: sessions})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))
	})

	t.Run("database down", func(t *testing.T) {
		r := NewRouter(Config{Sessions: sessions, HealthCheck: func(context.Context) error {
			return errors.New("connection refused")
		}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	t.Run("password mismatch re-renders the form", func(t *testing.T) {
		cl := app.newClient()
		w := cl.post("/register", url.Values{
			"username":         {"alice"},
			"password":         {"one"},
			"confirm_password": {"two"},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var page struct {
			Form formJSON `json:"form"`
		}
		decode(t, w, &page)
		assert.Equal(t, []string{"Passwords do not match."}, page.Form.NonField)
	})

	t.Run("missing fields", func(t *testing.T) {
		cl := app.newClient()
		w := cl.post("/register", url.Values{"username": {"alice"}})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var page struct {
			Form formJSON `json:"form"`
		}
		decode(t, w, &page)
		assert.Equal(t, []string{"This field is required."}, page.Form.errors("password"))
		assert.Equal(t, []string{"This field is required."}, page.Form.errors("confirm_password"))
	})

	cl := app.newClient()
	cl.login(t, "alice")

	t.Run("flash survives the redirect", func(t *testing.T) {
		w := cl.getJSON("/home")
		require.Equal(t, http.StatusOK, w.Code)
		doc := decode(t, w, nil)
		assert.Equal(t, "alice", doc.Username)
		assert.Equal(t, []flash.Message{
			{Level: flash.LevelSuccess, Text: "Registration successful. Please log in."},
			{Level: flash.LevelSuccess, Text: "Welcome back, alice!"},
		}, doc.Messages)

		// Shown once.
		doc = decode(t, cl.getJSON("/home"), nil)
		assert.Empty(t, doc.Messages)
	})

	t.Run("logged in users skip auth pages", func(t *testing.T) {
		for _, path := range []string{"/login", "/register", "/"} {
			w := cl.getJSON(path)
			assert.Equal(t, http.StatusFound, w.Code, path)
			assert.Equal(t, "/home", w.Header().Get("Location"), path)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		other := app.newClient()
		w := other.post("/register", url.Values{
			"username":         {"alice"},
			"password":         {"x"},
			"confirm_password": {"y"},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var page struct {
			Form formJSON `json:"form"`
		}
		decode(t, w, &page)
		assert.Equal(t, []string{"Username is already taken."}, page.Form.errors("username"))
	})

	t.Run("wrong password", func(t *testing.T) {
		other := app.newClient()
		w := other.post("/login", url.Values{"username": {"alice"}, "password": {"nope"}})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotContains(t, other.cookies, auth.SessionCookieName)

		var page struct {
			Form formJSON `json:"form"`
		}
		decode(t, w, &page)
		assert.Equal(t, []string{"Invalid username or password."}, page.Form.NonField)
	})

	t.Run("logout", func(t *testing.T) {
		session := *cl.cookies[auth.SessionCookieName]

		w := cl.post("/logout", nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.NotContains(t, cl.cookies, auth.SessionCookieName)

		doc := decode(t, cl.getJSON("/login"), nil)
		require.Len(t, doc.Messages, 1)
		assert.Equal(t, "You have been logged out.", doc.Messages[0].Text)

		// The old token is revoked.
		cl.cookies[auth.SessionCookieName] = &session
		w = cl.getJSON("/home")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})
}

func TestDeactivatedAccountIsSignedOut(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.login(t, "alice")

	require.Equal(t, http.StatusOK, cl.getJSON("/home").Code)

	app.store.mu.Lock()
	for _, u := range app.store.users {
		u.IsActive = false
	}
	app.store.mu.Unlock()

	w := cl.getJSON("/home")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, cl.cookies, auth.SessionCookieName)
}

func TestVenuePages(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.login(t, "alice")
	decode(t, cl.getJSON("/home"), nil) // consume the welcome flash

	type venueJSON struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		City         string `json:"city"`
		PricePerHour string `json:"price_per_hour"`
		AddOns       []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		} `json:"addons"`
	}

	t.Run("home shows popular venues and filter options", func(t *testing.T) {
		var page struct {
			PopularVenues       []venueJSON `json:"popular_venues"`
			AvailableCities     []string    `json:"available_cities"`
			AvailableCategories []string    `json:"available_categories"`
		}
		w := cl.getJSON("/home")
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &page)

		assert.Len(t, page.PopularVenues, 3)
		assert.Equal(t, []string{"Bandung", "Jakarta", "Yogyakarta"}, page.AvailableCities)
		assert.Equal(t, []string{"Badminton", "Basketball", "Futsal"}, page.AvailableCategories)
	})

	t.Run("catalog filters case-insensitively", func(t *testing.T) {
		var page struct {
			Venues  []venueJSON `json:"venues"`
			Filters struct {
				City string `json:"city"`
			} `json:"filters"`
		}
		w := cl.getJSON("/catalog?city=JAKARTA")
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &page)

		require.Len(t, page.Venues, 1)
		assert.Equal(t, "Arena Nusantara Futsal", page.Venues[0].Name)
		assert.NotEmpty(t, page.Venues[0].AddOns)
		assert.Equal(t, "JAKARTA", page.Filters.City, "filters are echoed back")
	})

	t.Run("catalog ignores a non-numeric max price", func(t *testing.T) {
		var page struct {
			Venues []venueJSON `json:"venues"`
		}
		decode(t, cl.getJSON("/catalog?max_price=abc"), &page)
		assert.Len(t, page.Venues, 3)

		decode(t, cl.getJSON("/catalog?max_price=200000"), &page)
		for _, v := range page.Venues {
			assert.NotEqual(t, "Arena Nusantara Futsal", v.Name)
		}
	})

	t.Run("detail", func(t *testing.T) {
		arena := app.venueByName(t, "Arena Nusantara Futsal")

		var page struct {
			Venue        venueJSON `json:"venue"`
			IsWishlisted bool      `json:"is_wishlisted"`
			Reviews      []any     `json:"reviews"`
		}
		w := cl.getJSON("/venue/" + arena.ID)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &page)

		assert.Equal(t, arena.ID, page.Venue.ID)
		assert.False(t, page.IsWishlisted)
		assert.Empty(t, page.Reviews)
		require.NotEmpty(t, page.Venue.AddOns)
		assert.Equal(t, "Match Official - Rp150,000", page.Venue.AddOns[0].Label)
	})

	t.Run("unknown venue", func(t *testing.T) {
		for _, path := range []string{"/venue/5b0d36b4-7d7b-4d51-9a1c-0c2a1fbdc1a7", "/venue/not-a-uuid"} {
			w := cl.getJSON(path)
			assert.Equal(t, http.StatusNotFound, w.Code, path)
		}
	})
}

func TestWishlistAndReviews(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.login(t, "alice")
	arena := app.venueByName(t, "Arena Nusantara Futsal")

	t.Run("toggle adds then removes", func(t *testing.T) {
		w := cl.post("/wishlist/toggle/"+arena.ID, url.Values{"next": {"/catalog"}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/catalog", w.Header().Get("Location"))

		var page struct {
			Items []struct {
				Venue struct {
					ID string `json:"id"`
				} `json:"venue"`
			} `json:"items"`
		}
		doc := decode(t, cl.getJSON("/wishlist"), &page)
		require.Len(t, page.Items, 1)
		assert.Equal(t, arena.ID, page.Items[0].Venue.ID)
		assert.Contains(t, doc.Messages, flash.Message{Level: flash.LevelSuccess, Text: "Added Arena Nusantara Futsal to your wishlist."})

		var detail struct {
			IsWishlisted bool `json:"is_wishlisted"`
		}
		decode(t, cl.getJSON("/venue/"+arena.ID), &detail)
		assert.True(t, detail.IsWishlisted)

		w = cl.post("/wishlist/toggle/"+arena.ID, url.Values{"next": {"//evil.example"}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/home", w.Header().Get("Location"))

		doc = decode(t, cl.getJSON("/wishlist"), &page)
		assert.Empty(t, page.Items)
		assert.Contains(t, doc.Messages, flash.Message{Level: flash.LevelInfo, Text: "Removed Arena Nusantara Futsal from your wishlist."})
	})

	t.Run("next with control characters stays on site", func(t *testing.T) {
		for _, next := range []string{"/\t/evil.example", "/\n/evil.example"} {
			w := cl.post("/wishlist/toggle/"+arena.ID, url.Values{"next": {next}})
			require.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/home", w.Header().Get("Location"), "next=%q", next)
		}
		cl.getJSON("/wishlist")
	})

	t.Run("toggle unknown venue", func(t *testing.T) {
		w := cl.post("/wishlist/toggle/5b0d36b4-7d7b-4d51-9a1c-0c2a1fbdc1a7", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid review is flashed", func(t *testing.T) {
		w := cl.post("/venue/"+arena.ID+"/add-review", url.Values{"rating": {"9"}, "comment": {"meh"}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/venue/"+arena.ID, w.Header().Get("Location"))

		var page struct {
			Reviews []any `json:"reviews"`
		}
		doc := decode(t, cl.getJSON("/venue/"+arena.ID), &page)
		assert.Empty(t, page.Reviews)
		assert.Contains(t, doc.Messages, flash.Message{
			Level: flash.LevelError,
			Text:  "Could not add review. Please check the form and try again.",
		})
	})

	t.Run("review is listed on the venue", func(t *testing.T) {
		w := cl.post("/venue/"+arena.ID+"/add-review", url.Values{"rating": {"5"}, "comment": {"Great pitch"}})
		require.Equal(t, http.StatusFound, w.Code)

		var page struct {
			Reviews []struct {
				Username string `json:"username"`
				Rating   int    `json:"rating"`
				Comment  string `json:"comment"`
			} `json:"reviews"`
		}
		doc := decode(t, cl.getJSON("/venue/"+arena.ID), &page)
		require.Len(t, page.Reviews, 1)
		assert.Equal(t, "alice", page.Reviews[0].Username)
		assert.Equal(t, 5, page.Reviews[0].Rating)
		assert.Contains(t, doc.Messages, flash.Message{Level: flash.LevelSuccess, Text: "Review added successfully."})
	})

	t.Run("review of unknown venue", func(t *testing.T) {
		w := cl.post("/venue/5b0d36b4-7d7b-4d51-9a1c-0c2a1fbdc1a7/add-review", url.Values{"rating": {"5"}, "comment": {"x"}})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookingFlow(t *testing.T) {
	app := newTestApp(t)
	cl := app.newClient()
	cl.login(t, "alice")
	arena := app.venueByName(t, "Arena Nusantara Futsal")
	official := arena.AddOns[0]
	require.Equal(t, "Match Official", official.Name)

	t.Run("booking form", func(t *testing.T) {
		var page struct {
			Form formJSON `json:"form"`
		}
		w := cl.getJSON("/venue/" + arena.ID + "/book")
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &page)

		var duration string
		for _, f := range page.Form.Fields {
			if f.Name == "duration_hours" {
				duration = f.Value
			}
		}
		assert.Equal(t, "1", duration)
	})

	t.Run("invalid input is reported per field", func(t *testing.T) {
		other := app.venueByName(t, "Bandung Hoop Center")
		w := cl.post("/venue/"+arena.ID+"/book", url.Values{
			"date":           {"tomorrow"},
			"start_time":     {"18:00"},
			"duration_hours": {"13"},
			"addons":         {other.AddOns[0].ID},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var page struct {
			Form formJSON `json:"form"`
		}
		decode(t, w, &page)
		assert.Equal(t, []string{"Enter a valid date."}, page.Form.errors("date"))
		assert.Equal(t, []string{"Ensure this value is less than or equal to 12."}, page.Form.errors("duration_hours"))
		assert.Equal(t, []string{"Select a valid choice."}, page.Form.errors("addons"))
		assert.Empty(t, app.store.bookings)
	})

	t.Run("missing and invalid fields are reported together", func(t *testing.T) {
		w := cl.post("/venue/"+arena.ID+"/book", url.Values{
			"date":           {"0000-01-01"},
			"duration_hours": {"13"},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var page struct {
			Form formJSON `json:"form"`
		}
		decode(t, w, &page)
		assert.Equal(t, []string{"This field is required."}, page.Form.errors("start_time"))
		assert.Equal(t, []string{"Enter a valid date."}, page.Form.errors("date"))
		assert.Equal(t, []string{"Ensure this value is less than or equal to 12."}, page.Form.errors("duration_hours"))
		assert.Empty(t, app.store.bookings)
	})

	w := cl.post("/venue/"+arena.ID+"/book", url.Values{
		"date":           {"2025-03-01"},
		"start_time":     {"18:00"},
		"duration_hours": {"2"},
		"addons":         {official.ID},
		"notes":          {"Bring bibs"},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/booking/"), location)
	require.True(t, strings.HasSuffix(location, "/payment"), location)
	bookingID := strings.TrimSuffix(strings.TrimPrefix(location, "/booking/"), "/payment")

	type bookingJSON struct {
		ID            string `json:"id"`
		Date          string `json:"date"`
		StartTime     string `json:"start_time"`
		Subtotal      string `json:"subtotal"`
		DepositAmount string `json:"deposit_amount"`
		GrandTotal    string `json:"grand_total"`
		PaymentMethod string `json:"payment_method"`
		Status        string `json:"status"`
		Notes         string `json:"notes"`
	}

	t.Run("payment page shows totals", func(t *testing.T) {
		var page struct {
			Booking    bookingJSON `json:"booking"`
			Subtotal   string      `json:"subtotal"`
			Deposit    string      `json:"deposit"`
			GrandTotal string      `json:"grand_total"`
		}
		w := cl.getJSON(location)
		require.Equal(t, http.StatusOK, w.Code)
		doc := decode(t, w, &page)

		assert.Equal(t, "650000", page.Subtotal)
		assert.Equal(t, "10000", page.Deposit)
		assert.Equal(t, "660000", page.GrandTotal)
		assert.Equal(t, "waiting", page.Booking.Status)
		assert.Equal(t, "2025-03-01", page.Booking.Date)
		assert.Equal(t, "18:00", page.Booking.StartTime)
		assert.Equal(t, "Bring bibs", page.Booking.Notes)
		assert.Contains(t, doc.Messages, flash.Message{
			Level: flash.LevelInfo,
			Text:  "Booking created. Please complete the payment to confirm.",
		})
	})

	t.Run("other users cannot see the booking", func(t *testing.T) {
		bob := app.newClient()
		bob.login(t, "bob")

		for _, path := range []string{location, "/booking/" + bookingID + "/success"} {
			w := bob.getJSON(path)
			assert.Equal(t, http.StatusNotFound, w.Code, path)
		}
		w := bob.post(location, url.Values{"payment_method": {"qris"}})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid payment method", func(t *testing.T) {
		w := cl.post(location, url.Values{"payment_method": {"cash"}})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var page struct {
			Form formJSON `json:"form"`
		}
		decode(t, w, &page)
		assert.Equal(t, []string{"Select a valid choice."}, page.Form.errors("payment_method"))
	})

	t.Run("pay", func(t *testing.T) {
		w := cl.post(location, url.Values{"payment_method": {"gopay"}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/booking/"+bookingID+"/success", w.Header().Get("Location"))

		var page struct {
			Booking bookingJSON `json:"booking"`
		}
		doc := decode(t, cl.getJSON("/booking/"+bookingID+"/success"), &page)
		assert.Equal(t, "confirmed", page.Booking.Status)
		assert.Equal(t, "gopay", page.Booking.PaymentMethod)
		assert.Equal(t, "660000", page.Booking.GrandTotal)
		assert.Contains(t, doc.Messages, flash.Message{Level: flash.LevelSuccess, Text: "Payment confirmed! Enjoy your game."})
	})

	t.Run("paying twice is a conflict", func(t *testing.T) {
		w := cl.post(location, url.Values{"payment_method": {"qris"}})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, booking.PaymentGoPay, app.store.bookings[bookingID].booking.PaymentMethod)
	})

	t.Run("booking counts towards popularity", func(t *testing.T) {
		var page struct {
			PopularVenues []struct {
				Name         string `json:"name"`
				BookingCount int    `json:"booking_count"`
			} `json:"popular_venues"`
		}
		decode(t, cl.getJSON("/home"), &page)
		require.NotEmpty(t, page.PopularVenues)
		assert.Equal(t, "Arena Nusantara Futsal", page.PopularVenues[0].Name)
		assert.Equal(t, 1, page.PopularVenues[0].BookingCount)
	})
}

func TestHTMLPages(t *testing.T) {
	app := newTestApp(t)
	anon := app.newClient()

	for path, want := range map[string]string{
		"/login":    "<h1>Login</h1>",
		"/register": "<h1>Register</h1>",
		"/nowhere":  "not found",
	} {
		w := anon.executeRequest(http.MethodGet, path, nil, "")
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
		assert.Contains(t, w.Body.String(), want, path)
	}

	cl := app.newClient()
	cl.login(t, "alice")
	arena := app.venueByName(t, "Arena Nusantara Futsal")

	w := cl.post("/venue/"+arena.ID+"/book", url.Values{
		"date": {"2025-03-01"}, "start_time": {"18:00"}, "duration_hours": {"1"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	payment := w.Header().Get("Location")

	pages := map[string]string{
		"/home":                        "Popular venues",
		"/catalog":                     "Arena Nusantara Futsal",
		"/venue/" + arena.ID:           "Leave a review",
		"/venue/" + arena.ID + "/book": "Continue to payment",
		"/wishlist":                    "Your wishlist is empty.",
		payment:                        "Rp260,000",
	}
	for path, want := range pages {
		w := cl.executeRequest(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), want, path)
		assert.Contains(t, w.Body.String(), "Logout (alice)", path)
	}
}
