package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TestimonialView is the flattened, UI-friendly shape of a testimonial row.
type TestimonialView struct {
	ID           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	FormID       *uuid.UUID `json:"form_id,omitempty"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Title        string     `json:"title,omitempty"`
	Company      string     `json:"company,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	Message      string     `json:"message,omitempty"`
	Rating       int        `json:"rating,omitempty"`
	VideoURL     string     `json:"video_url,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	Duration     float64    `json:"duration,omitempty"`
	Images       []string   `json:"images"`
	Source       string     `json:"source,omitempty"`
	SourceURL    string     `json:"source_url,omitempty"`
	Tags         []string   `json:"tags"`
	Trim         *Trim      `json:"trim,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToView converts a raw row into a TestimonialView. The data blob has been
// written by several generations of the dashboard, so every field is read
// leniently and a malformed blob yields an otherwise empty view.
func ToView(t Testimonial) TestimonialView {
	v := TestimonialView{
		ID:        t.ID,
		Type:      t.Type,
		Status:    t.Status,
		FormID:    t.FormID,
		CreatedAt: t.CreatedAt,
		Images:    []string{},
		Tags:      []string{},
	}

	var data map[string]interface{}
	if len(t.Data) > 0 {
		_ = json.Unmarshal(t.Data, &data)
	}

	v.Name = stringField(data, "name", "reviewer_name", "customer_name")
	if v.Name == "" {
		v.Name = "Anonymous"
	}
	v.Email = stringField(data, "email")
	v.Title = stringField(data, "title", "job_title")
	v.Company = stringField(data, "company")
	v.AvatarURL = stringField(data, "avatar_url", "avatar")
	v.Message = stringField(data, "message", "text", "content")
	v.Rating = ratingField(data["rating"])
	v.VideoURL = stringField(data, "video_url")
	v.ThumbnailURL = stringField(data, "thumbnail_url", "thumbnail")
	v.Duration = floatField(data["duration"])
	v.Source = stringField(data, "source")
	v.SourceURL = stringField(data, "source_url")
	v.Images = listField(data["images"])
	v.Tags = listField(data["tags"])

	if trim, ok := data["trim"].(map[string]interface{}); ok {
		start, end := floatField(trim["start"]), floatField(trim["end"])
		if end > start {
			v.Trim = &Trim{Start: start, End: end}
		}
	}
	return v
}

// ToViews maps ToView over rows.
func ToViews(rows []Testimonial) []TestimonialView {
	views := make([]TestimonialView, 0, len(rows))
	for _, t := range rows {
		views = append(views, ToView(t))
	}
	return views
}

// DecodeData reads the blob into the typed shape, going through ToView so the
// same lenient rules apply.
func DecodeData(t Testimonial) TestimonialData {
	v := ToView(t)
	d := TestimonialData{
		Email:        v.Email,
		Title:        v.Title,
		Company:      v.Company,
		AvatarURL:    v.AvatarURL,
		Message:      v.Message,
		Rating:       v.Rating,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		Images:       v.Images,
		Source:       v.Source,
		SourceURL:    v.SourceURL,
		Tags:         v.Tags,
		Trim:         v.Trim,
	}
	if v.Name != "Anonymous" {
		d.Name = v.Name
	}
	var raw map[string]interface{}
	if json.Unmarshal(t.Data, &raw) == nil {
		d.VideoPath, _ = raw["video_path"].(string)
		d.Consent, _ = raw["consent"].(bool)
		if paths := listField(raw["image_paths"]); len(paths) > 0 {
			d.ImagePaths = paths
		}
	}
	return d
}

// MergeData applies patch onto the JSON object in raw. A nil value in patch
// removes the key. Keys not mentioned in patch are preserved untouched.
func MergeData(raw json.RawMessage, patch map[string]interface{}) (json.RawMessage, error) {
	data := map[string]interface{}{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("existing data is not a JSON object: %w", err)
		}
	}
	for k, v := range patch {
		if v == nil {
			delete(data, k)
			continue
		}
		data[k] = v
	}
	out, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode data: %w", err)
	}
	return out, nil
}

func stringField(data map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := data[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func floatField(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err == nil {
			return f
		}
	}
	return 0
}

// ratingField clamps to the 0..5 star range; 0 means unrated.
func ratingField(v interface{}) int {
	r := int(math.Round(floatField(v)))
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

func listField(v interface{}) []string {
	out := []string{}
	switch items := v.(type) {
	case []interface{}:
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		for _, part := range strings.Split(items, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
