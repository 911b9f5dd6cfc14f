package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kinoteka-cli/kinoteka/auth"
	"github.com/kinoteka-cli/kinoteka/filesystem"
	"github.com/kinoteka-cli/kinoteka/media"
	"github.com/kinoteka-cli/kinoteka/network"
	"github.com/kinoteka-cli/kinoteka/progress"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

const contentID = "0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client, err := New(Options{
		BaseURL:    server.URL,
		HTTPClient: network.NewClient(network.Options{}),
		Session:    mo.Some(auth.Session{ID: "sess", CSRF: "csrf-token"}),
	})
	if err != nil {
		panic(err)
	}
	return client, server
}

func TestContent(t *testing.T) {
	Convey("Given a server with a movie", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/content/"+contentID+"/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"id":            contentID,
				"title":         "Stalker",
				"type":          "movie",
				"release_year":  1979,
				"is_free":       false,
				"trailer_url":   " https://youtu.be/abc ",
				"logo_wide_url": "https://cdn.example.com/wide.jpg",
				"avg_rating":    "4.5",
			})
		})
		client, server := newTestClient(mux)
		Reset(server.Close)

		Convey("Content should decode and normalize it", func() {
			ref, err := client.Content(context.Background(), contentID)
			So(err, ShouldBeNil)
			So(ref.Type, ShouldEqual, Movie)
			So(ref.ReleaseYear, ShouldEqual, 1979)
			So(ref.TrailerURL, ShouldEqual, "https://youtu.be/abc")
			So(ref.BackdropURL, ShouldEqual, "https://cdn.example.com/wide.jpg")
			So(ref.AvgRating, ShouldEqual, 4.5)
			So(ref.HasTrailer(), ShouldBeTrue)
		})
	})

	Convey("Given a server returning an unknown type", t, func() {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"id": contentID, "type": "podcast"})
		}))
		Reset(server.Close)

		Convey("Content should report a malformed response", func() {
			_, err := client.Content(context.Background(), contentID)
			So(errors.Is(err, ErrMalformed), ShouldBeTrue)
		})
	})

	Convey("Given a server returning garbage", t, func() {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		Reset(server.Close)

		Convey("Content should report a malformed response", func() {
			_, err := client.Content(context.Background(), contentID)
			So(errors.Is(err, ErrMalformed), ShouldBeTrue)
		})
	})

	Convey("Given an unreachable server", t, func() {
		client, server := newTestClient(http.NotFoundHandler())
		server.Close()

		Convey("Requests should fail with a network error", func() {
			_, err := client.CanWatch(context.Background(), contentID)
			So(errors.Is(err, ErrNetwork), ShouldBeTrue)
			So(errors.Is(err, ErrServer), ShouldBeFalse)
		})
	})
}

func TestEligibility(t *testing.T) {
	Convey("Given can_watch answers", t, func() {
		var body atomic.Value

		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/content/"+contentID+"/can_watch/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, body.Load())
		})

		client, server := newTestClient(mux)
		Reset(server.Close)

		Convey("A bare can_watch true should allow watching", func() {
			body.Store(map[string]any{"can_watch": true})

			can, err := client.CanWatch(context.Background(), contentID)
			So(err, ShouldBeNil)
			So(can, ShouldBeTrue)
		})

		Convey("can_watch false should deny it", func() {
			body.Store(map[string]any{"ok": true, "can_watch": false})

			can, err := client.CanWatch(context.Background(), contentID)
			So(err, ShouldBeNil)
			So(can, ShouldBeFalse)
		})
	})
}

func TestSeriesTree(t *testing.T) {
	Convey("Given series-tree answers", t, func() {
		var body atomic.Value

		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/content/"+contentID+"/series-tree/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, body.Load())
		})

		client, server := newTestClient(mux)
		Reset(server.Close)

		Convey("An ok tree should be normalized", func() {
			body.Store(map[string]any{"ok": true, "seasons": []any{
				map[string]any{"episodes": []any{map[string]any{"title": "Pilot"}}},
				map[string]any{"episodes": []any{}},
			}})

			tree, err := client.SeriesTree(context.Background(), contentID)
			So(err, ShouldBeNil)
			So(tree, ShouldHaveLength, 2)
			So(tree[0].Number, ShouldEqual, 1)
			So(tree[1].Number, ShouldEqual, 2)
		})

		Convey("A tree flagged not ok should be unavailable", func() {
			body.Store(map[string]any{"ok": false, "seasons": []any{
				map[string]any{"season_num": 1, "episodes": []any{}},
			}})

			tree, err := client.SeriesTree(context.Background(), contentID)
			So(errors.Is(err, ErrUnavailable), ShouldBeTrue)
			So(tree, ShouldBeNil)
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given a server answering with an error status", t, func() {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "boom"})
		}))
		Reset(server.Close)

		Convey("The error should carry the status and the detail", func() {
			_, err := client.CanWatch(context.Background(), contentID)
			So(errors.Is(err, ErrServer), ShouldBeTrue)

			var status *StatusError
			So(errors.As(err, &status), ShouldBeTrue)
			So(status.Code, ShouldEqual, http.StatusInternalServerError)
			So(status.Detail, ShouldEqual, "boom")
		})
	})

	Convey("StatusError should map forbidden and not found", t, func() {
		So(errors.Is(&StatusError{Code: 403}, ErrNotEligible), ShouldBeTrue)
		So(errors.Is(&StatusError{Code: 404}, ErrUnavailable), ShouldBeTrue)
		So(errors.Is(&StatusError{Code: 500}, ErrUnavailable), ShouldBeFalse)
	})
}

func TestSource(t *testing.T) {
	Convey("Given source responses", t, func() {
		var status atomic.Int32
		var body atomic.Value

		mux := http.NewServeMux()
		handler := func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, int(status.Load()), body.Load())
		}
		mux.HandleFunc("/api/v1/content/"+contentID+"/source/", handler)
		mux.HandleFunc("/api/v1/content/"+contentID+"/episode-source/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("sn") != "2" || r.URL.Query().Get("en") != "3" {
				writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false})
				return
			}
			handler(w, r)
		})

		client, server := newTestClient(mux)
		Reset(server.Close)

		Convey("An ok answer should become SourceOK", func() {
			status.Store(http.StatusOK)
			body.Store(map[string]any{"ok": true, "kind": "file", "url": "https://cdn.example.com/m.mp4"})

			result, err := client.Source(context.Background(), contentID)
			So(err, ShouldBeNil)
			So(result, ShouldResemble, SourceOK{Kind: media.File, URL: "https://cdn.example.com/m.mp4"})
		})

		Convey("An unknown kind should be classified from the url", func() {
			status.Store(http.StatusOK)
			body.Store(map[string]any{"ok": true, "kind": "stream", "url": "https://rutube.ru/video/x/"})

			result, err := client.EpisodeSource(context.Background(), contentID, 2, 3)
			So(err, ShouldBeNil)
			So(result.(SourceOK).Kind, ShouldEqual, media.Rutube)
		})

		Convey("An empty url should be unavailable", func() {
			status.Store(http.StatusOK)
			body.Store(map[string]any{"ok": true, "kind": "file", "url": ""})

			result, err := client.Source(context.Background(), contentID)
			So(err, ShouldBeNil)
			So(result, ShouldHaveSameTypeAs, SourceUnavailable{})
		})

		Convey("Forbidden should be unavailable with its reason", func() {
			status.Store(http.StatusForbidden)
			body.Store(map[string]any{"ok": false, "reason": "forbidden"})

			result, err := client.Source(context.Background(), contentID)
			So(err, ShouldBeNil)
			So(result, ShouldResemble, SourceUnavailable{Reason: "forbidden"})
		})

		Convey("Not found should be unavailable", func() {
			status.Store(http.StatusNotFound)
			body.Store(map[string]any{"ok": false})

			result, err := client.EpisodeSource(context.Background(), contentID, 2, 3)
			So(err, ShouldBeNil)
			So(result, ShouldHaveSameTypeAs, SourceUnavailable{})
		})

		Convey("A server failure should be a SourceError", func() {
			status.Store(http.StatusBadGateway)
			body.Store(map[string]any{"detail": "upstream"})

			result, err := client.Source(context.Background(), contentID)
			So(errors.Is(err, ErrServer), ShouldBeTrue)
			So(result, ShouldHaveSameTypeAs, SourceError{})
		})
	})
}

func TestPost(t *testing.T) {
	Convey("Given a server recording posts", t, func() {
		var (
			csrf    atomic.Value
			referer atomic.Value
			payload atomic.Value
		)

		record := func(r *http.Request) {
			csrf.Store(r.Header.Get("X-CSRFToken"))
			referer.Store(r.Header.Get("Referer"))
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			payload.Store(body)
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/content/"+contentID+"/progress/", func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				writeJSON(w, http.StatusOK, map[string]any{"ok": true, "position_sec": 120, "duration_sec": nil, "is_completed": false})
				return
			}
			record(r)
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})
		mux.HandleFunc("/api/v1/content/"+contentID+"/rate/", func(w http.ResponseWriter, r *http.Request) {
			record(r)
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "avg": 3.7})
		})
		mux.HandleFunc("/api/v1/purchases/", func(w http.ResponseWriter, r *http.Request) {
			record(r)
			writeJSON(w, http.StatusCreated, map[string]any{"ok": true})
		})
		mux.HandleFunc("/api/v1/favorites/"+contentID+"/toggle/", func(w http.ResponseWriter, r *http.Request) {
			record(r)
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "is_favorite": true})
		})
		mux.HandleFunc("/api/v1/favorites/"+contentID+"/status/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "is_favorite": true})
		})

		client, server := newTestClient(mux)
		Reset(server.Close)

		Convey("Progress reports should carry the csrf token and a null duration", func() {
			err := client.ReportProgress(context.Background(), contentID, progress.Report{Position: 0, Season: 1, Episode: 2})
			So(err, ShouldBeNil)
			So(csrf.Load(), ShouldEqual, "csrf-token")
			So(referer.Load(), ShouldEqual, server.URL+"/")

			body := payload.Load().(map[string]any)
			So(body, ShouldContainKey, "duration")
			So(body["duration"], ShouldBeNil)
			So(body["sn"], ShouldEqual, 1.0)
			So(body["en"], ShouldEqual, 2.0)
			So(body["completed"], ShouldEqual, false)
		})

		Convey("Saved progress should decode", func() {
			saved, err := client.Progress(context.Background(), contentID, 0, 0)
			So(err, ShouldBeNil)
			So(saved.Position, ShouldEqual, 120)
			So(saved.Duration, ShouldBeNil)
		})

		Convey("Rate should send the value and return the average", func() {
			avg, err := client.Rate(context.Background(), contentID, 4)
			So(err, ShouldBeNil)
			So(avg, ShouldEqual, 3.7)
			So(payload.Load().(map[string]any)["value"], ShouldEqual, 4.0)
		})

		Convey("Rate should refuse values out of range", func() {
			_, err := client.Rate(context.Background(), contentID, 6)
			So(err, ShouldNotBeNil)
		})

		Convey("Purchase should accept a created status", func() {
			So(client.Purchase(context.Background(), contentID), ShouldBeNil)
			So(payload.Load().(map[string]any)["content_id"], ShouldEqual, contentID)
		})

		Convey("Favorites should report the server state", func() {
			on, err := client.ToggleFavorite(context.Background(), contentID)
			So(err, ShouldBeNil)
			So(on, ShouldBeTrue)

			status, err := client.FavoriteStatus(context.Background(), contentID)
			So(err, ShouldBeNil)
			So(status, ShouldBeTrue)
		})
	})
}

func TestSearch(t *testing.T) {
	Convey("Given a search endpoint", t, func() {
		var hits atomic.Int32
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			writeJSON(w, http.StatusOK, map[string]any{
				"ok":          true,
				"exact_match": map[string]any{"id": "1", "title": "Solaris", "type": "movie", "rating": 4.2},
				"results": []map[string]any{
					{"id": "2", "title": "Solaris (2002)", "type": "movie"},
					{"id": "3", "title": "Broken", "type": "unknown"},
				},
			})
		}))
		Reset(server.Close)

		Convey("The exact match should come first and invalid results should be skipped", func() {
			results, err := client.Search(context.Background(), "solaris", "")
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)
			So(results[0].Title, ShouldEqual, "Solaris")
			So(results[0].AvgRating, ShouldEqual, 4.2)

			Convey("A repeated query should be served from the cache", func() {
				again, err := client.Search(context.Background(), "solaris", "")
				So(err, ShouldBeNil)
				So(again, ShouldResemble, results)
				So(hits.Load(), ShouldEqual, int32(1))
			})
		})

		Convey("An empty query should not hit the server", func() {
			results, err := client.Search(context.Background(), "  ", Movie)
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
			So(hits.Load(), ShouldEqual, int32(0))
		})
	})
}
