package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/gin-gonic/gin"
	"github.com/jimezsa/suitlink/internal/models"
	"github.com/jimezsa/suitlink/internal/network"
	"github.com/rs/zerolog"
)

// stdDoer forwards fhttp requests through net/http to the httptest server.
type stdDoer struct {
	base   *url.URL
	client *http.Client
	cookie string
}

func (d stdDoer) URL(path string, query url.Values) string {
	return network.JoinURL(d.base, path, query)
}

func (d stdDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	out, err := http.NewRequestWithContext(req.Context(), req.Method, req.URL.String(), req.Body)
	if err != nil {
		return nil, err
	}
	out.Header = http.Header(req.Header)
	out.ContentLength = req.ContentLength
	if d.cookie != "" {
		out.Header.Set("Cookie", d.cookie)
	}
	resp, err := d.client.Do(out)
	if err != nil {
		return nil, err
	}
	return &fhttp.Response{
		StatusCode: resp.StatusCode,
		Header:     fhttp.Header(resp.Header),
		Body:       resp.Body,
		Request:    req,
	}, nil
}

// stubAPI is an in-memory stand-in for the SuitLink backend.
type stubAPI struct {
	mu           sync.Mutex
	applications []models.Application
	lastQuery    url.Values
	lastBody     map[string]any
	uploadedName string
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func fail(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"success": false, "message": message}
	for key, value := range extra {
		body[key] = value
	}
	c.JSON(status, body)
}

func (s *stubAPI) router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1")

	v1.GET("/auth/me", func(c *gin.Context) {
		if token, err := c.Cookie("token"); err != nil || token != "valid" {
			fail(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		ok(c, models.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: models.RoleEmployer})
	})

	v1.GET("/jobs", func(c *gin.Context) {
		s.mu.Lock()
		s.lastQuery = c.Request.URL.Query()
		s.mu.Unlock()
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))
		jobs := []models.JobPosting{{ID: "j11", Title: "Go Developer", Status: models.JobOpen}}
		ok(c, models.NewPage(jobs, page, limit, 15))
	})

	v1.POST("/applications", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			fail(c, http.StatusBadRequest, "Invalid body", nil)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lastBody = body
		jobID, _ := body["jobPostingId"].(string)
		for _, app := range s.applications {
			if app.JobPosting.ID == jobID {
				fail(c, http.StatusBadRequest, "You have already applied to this job", nil)
				return
			}
		}
		app := models.Application{ID: "a" + strconv.Itoa(len(s.applications)+1), JobPosting: models.JobRef{ID: jobID}, Status: models.StatusPending}
		s.applications = append(s.applications, app)
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": app})
	})

	v1.GET("/applications/job/:jobId", func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lastQuery = c.Request.URL.Query()
		status := c.Query("status")
		var matched []models.Application
		for _, app := range s.applications {
			if app.JobPosting.ID != c.Param("jobId") {
				continue
			}
			if status != "" && string(app.Status) != status {
				continue
			}
			matched = append(matched, app)
		}
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))
		start := (page - 1) * limit
		end := start + limit
		if start > len(matched) {
			start = len(matched)
		}
		if end > len(matched) {
			end = len(matched)
		}
		ok(c, models.NewPage(matched[start:end], page, limit, len(matched)))
	})

	v1.PATCH("/applications/:id/status", func(c *gin.Context) {
		var body struct {
			Status models.ApplicationStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			fail(c, http.StatusBadRequest, "Invalid body", nil)
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.applications {
			if s.applications[i].ID == c.Param("id") {
				s.applications[i].Status = body.Status
				ok(c, s.applications[i])
				return
			}
		}
		fail(c, http.StatusNotFound, "Application not found", nil)
	})

	v1.GET("/company/profile", func(c *gin.Context) {
		fail(c, http.StatusNotFound, "Company profile not found", nil)
	})

	v1.PATCH("/company/profile", func(c *gin.Context) {
		fail(c, http.StatusBadRequest, "Validation failed", gin.H{
			"errors": []gin.H{{"field": "companyName", "message": "Company name is required"}},
		})
	})

	v1.PUT("/applicant/resume", func(c *gin.Context) {
		file, err := c.FormFile("resume")
		if err != nil {
			fail(c, http.StatusBadRequest, "Resume file is required", nil)
			return
		}
		s.mu.Lock()
		s.uploadedName = file.Filename
		s.mu.Unlock()
		ok(c, models.ApplicantProfile{Resumes: []models.Resume{{ID: "r1", FileName: file.Filename}}})
	})

	v1.POST("/auth/logout", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return r
}

func newStubClient(t *testing.T) (*Client, *stubAPI, stdDoer) {
	t.Helper()
	stub := &stubAPI{}
	server := httptest.NewServer(stub.router())
	t.Cleanup(server.Close)

	base, err := network.ParseBaseURL(server.URL + "/api/v1")
	if err != nil {
		t.Fatalf("ParseBaseURL() error = %v", err)
	}
	doer := stdDoer{base: base, client: server.Client()}
	return New(doer, zerolog.Nop()), stub, doer
}
