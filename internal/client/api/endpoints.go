package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agrismart/agrismart-cli/internal/client/models"
	"github.com/agrismart/agrismart-cli/internal/common"
)

// AuthResponse is what /auth/login and /auth/register return. The adapter
// validates field presence only; anything beyond that is the backend's
// problem.
type AuthResponse struct {
	Message     string      `json:"message"`
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

func (r AuthResponse) validate() error {
	if r.AccessToken == "" || r.User.ID == 0 {
		return common.ErrContractViolation
	}
	return nil
}

// RegisterRequest carries the registration profile fields.
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    string  `json:"phone,omitempty"`
	Role     string  `json:"role,omitempty"`
	Language string  `json:"language,omitempty"`
	Location string  `json:"location,omitempty"`
	FarmSize float64 `json:"farm_size,omitempty"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := c.post(ctx, "/auth/register", req, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, out.validate()
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResponse
	if err := c.post(ctx, "/auth/login", body, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, out.validate()
}

func (c *Client) Profile(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.get(ctx, "/user/profile", nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, patch models.UserPatch) error {
	return c.put(ctx, "/user/profile", patch, nil)
}

func (c *Client) Weather(ctx context.Context, location string) (models.WeatherReport, error) {
	q := url.Values{}
	if location != "" {
		q.Set("location", location)
	}
	var out models.WeatherReport
	err := c.get(ctx, "/weather", q, &out)
	return out, err
}

// DetectDisease uploads a crop image as multipart form data and returns the
// classification. The model itself is an opaque backend service.
func (c *Client) DetectDisease(ctx context.Context, filename string, image []byte) (models.Detection, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		return models.Detection{}, err
	}
	if _, err := fw.Write(image); err != nil {
		return models.Detection{}, err
	}
	if err := w.Close(); err != nil {
		return models.Detection{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/disease/detect", &buf)
	if err != nil {
		return models.Detection{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out models.Detection
	err = c.send(req, &out)
	return out, err
}

func (c *Client) DiseaseHistory(ctx context.Context) ([]models.DetectionRecord, error) {
	var out []models.DetectionRecord
	err := c.get(ctx, "/disease/history", nil, &out)
	return out, err
}

func (c *Client) Products(ctx context.Context, category, search string) ([]models.Product, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("search", search)
	}
	var out []models.Product
	err := c.get(ctx, "/products", q, &out)
	return out, err
}

// createdResponse is the backend's uniform "row created" payload.
type createdResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

func (c *Client) CreateProduct(ctx context.Context, p models.NewProduct) (int64, error) {
	var out createdResponse
	if err := c.post(ctx, "/products", p, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) Tips(ctx context.Context, category, language string) ([]models.Tip, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if language != "" {
		q.Set("language", language)
	}
	var out []models.Tip
	err := c.get(ctx, "/tips", q, &out)
	return out, err
}

func (c *Client) Schemes(ctx context.Context, category, state string) ([]models.Scheme, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	if state != "" {
		q.Set("state", state)
	}
	var out []models.Scheme
	err := c.get(ctx, "/schemes", q, &out)
	return out, err
}

func (c *Client) ForumPosts(ctx context.Context, category string) ([]models.ForumPost, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	var out []models.ForumPost
	err := c.get(ctx, "/forum/posts", q, &out)
	return out, err
}

func (c *Client) CreateForumPost(ctx context.Context, p models.NewForumPost) (int64, error) {
	var out createdResponse
	if err := c.post(ctx, "/forum/posts", p, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) Comments(ctx context.Context, postID int64) ([]models.ForumComment, error) {
	var out []models.ForumComment
	err := c.get(ctx, "/forum/posts/"+strconv.FormatInt(postID, 10)+"/comments", nil, &out)
	return out, err
}

func (c *Client) AddComment(ctx context.Context, postID int64, content string) error {
	body := map[string]string{"content": content}
	return c.post(ctx, "/forum/posts/"+strconv.FormatInt(postID, 10)+"/comments", body, nil)
}

func (c *Client) AskAI(ctx context.Context, question, language string) (models.ChatExchange, error) {
	body := map[string]string{"question": question, "language": language}
	var out models.ChatExchange
	err := c.post(ctx, "/ai/chat", body, &out)
	return out, err
}

func (c *Client) ChatHistory(ctx context.Context) ([]models.ChatExchange, error) {
	var out []models.ChatExchange
	err := c.get(ctx, "/ai/chat/history", nil, &out)
	return out, err
}

func (c *Client) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var out models.DashboardStats
	err := c.get(ctx, "/dashboard/stats", nil, &out)
	return out, err
}

// Speak converts text to speech. An absent audio field is the defined
// failure signal, reported as ok=false rather than an error.
func (c *Client) Speak(ctx context.Context, text string) (audio []byte, ok bool, err error) {
	body := map[string]string{"text": text}
	var out struct {
		Audio string `json:"audio"`
	}
	if err := c.post(ctx, "/ai/speak", body, &out); err != nil {
		return nil, false, err
	}
	if out.Audio == "" {
		return nil, false, nil
	}
	audio, err = base64.StdEncoding.DecodeString(out.Audio)
	if err != nil {
		return nil, false, fmt.Errorf("%w: bad audio encoding: %v", common.ErrContractViolation, err)
	}
	return audio, true, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/health", nil, nil)
}
