package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/devtrails/campdirect/internal/domain/entity"
	repo "github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/internal/query"
	"github.com/devtrails/campdirect/pkg/apperr"
	"github.com/devtrails/campdirect/pkg/geocode"
	"github.com/devtrails/campdirect/pkg/helpers"
)

// BootcampService implements the bootcamp directory: CRUD with ownership
// checks, geocoded locations, radius search, photo upload and full-text
// search over the Elasticsearch index.
type BootcampService struct {
	Bootcamps    repo.BootcampRepository
	Courses      repo.CourseRepository
	Reviews      repo.ReviewRepository
	Geo          geocode.Geocoder
	GCS          *storage.Client
	GCSBucket    string
	MaxPhotoSize int64
	ES           *elasticsearch.Client
	ESIndex      string
	Logger       *logrus.Logger
}

type BootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGi      *bool
}

func (s *BootcampService) List(ctx context.Context, spec *query.Spec) (*repo.Listing, error) {
	listing, err := s.Bootcamps.List(ctx, spec)
	if err != nil {
		return nil, apperr.Server("list bootcamps", err)
	}
	return listing, nil
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return nil, translateBootcampErr(err, id)
	}
	return b, nil
}

// Create geocodes the address and persists a new bootcamp owned by the
// actor. A publisher may own at most one bootcamp; admins are exempt.
func (s *BootcampService) Create(ctx context.Context, actor *entity.User, in BootcampInput) (*entity.Bootcamp, error) {
	if err := validateCareers(in.Careers); err != nil {
		return nil, err
	}
	if actor.Role != entity.RoleAdmin {
		if _, err := s.Bootcamps.GetByUserID(ctx, actor.ID); err == nil {
			return nil, apperr.Duplicate("The user with ID %s has already published a bootcamp", actor.ID)
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.Server("check existing bootcamp", err)
		}
	}

	loc, err := s.resolveLocation(ctx, in.Address)
	if err != nil {
		return nil, err
	}

	b := &entity.Bootcamp{
		Name:          in.Name,
		Slug:          slug.Make(in.Name),
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Location:      loc,
		Careers:       in.Careers,
		Photo:         "no-photo.jpg",
		Housing:       boolValue(in.Housing),
		JobAssistance: boolValue(in.JobAssistance),
		JobGuarantee:  boolValue(in.JobGuarantee),
		AcceptGi:      boolValue(in.AcceptGi),
		UserID:        actor.ID,
	}
	if err := s.Bootcamps.Create(ctx, b); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Duplicate("Bootcamp with name %s already exists", in.Name)
		}
		return nil, apperr.Server("create bootcamp", err)
	}
	s.index(ctx, b)
	return b, nil
}

// Update applies a partial update. Only the owner or an admin may update;
// a name change re-slugs, an address change re-geocodes.
func (s *BootcampService) Update(ctx context.Context, actor *entity.User, id string, in BootcampInput) (*entity.Bootcamp, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return nil, translateBootcampErr(err, id)
	}
	if !actor.CanModify(b.UserID) {
		return nil, apperr.Forbidden("User %s is not authorized to update this bootcamp", actor.ID)
	}
	if in.Name != "" {
		b.Name = in.Name
		b.Slug = slug.Make(in.Name)
	}
	if in.Description != "" {
		b.Description = in.Description
	}
	if in.Website != "" {
		b.Website = in.Website
	}
	if in.Phone != "" {
		b.Phone = in.Phone
	}
	if in.Email != "" {
		b.Email = in.Email
	}
	if len(in.Careers) > 0 {
		if err := validateCareers(in.Careers); err != nil {
			return nil, err
		}
		b.Careers = in.Careers
	}
	if in.Address != "" {
		loc, gErr := s.resolveLocation(ctx, in.Address)
		if gErr != nil {
			return nil, gErr
		}
		b.Location = loc
	}
	if in.Housing != nil {
		b.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		b.JobAssistance = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		b.JobGuarantee = *in.JobGuarantee
	}
	if in.AcceptGi != nil {
		b.AcceptGi = *in.AcceptGi
	}

	if err := s.Bootcamps.Update(ctx, b); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperr.Duplicate("Bootcamp with name %s already exists", in.Name)
		}
		return nil, apperr.Server("update bootcamp", err)
	}
	s.index(ctx, b)
	return b, nil
}

// Delete removes a bootcamp and cascades to its courses and reviews.
func (s *BootcampService) Delete(ctx context.Context, actor *entity.User, id string) error {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return translateBootcampErr(err, id)
	}
	if !actor.CanModify(b.UserID) {
		return apperr.Forbidden("User %s is not authorized to delete this bootcamp", actor.ID)
	}
	if err := s.Courses.DeleteByBootcamp(ctx, id); err != nil {
		return apperr.Server("delete courses", err)
	}
	if err := s.Reviews.DeleteByBootcamp(ctx, id); err != nil {
		return apperr.Server("delete reviews", err)
	}
	if err := s.Bootcamps.Delete(ctx, id); err != nil {
		return apperr.Server("delete bootcamp", err)
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// WithinRadius geocodes the zipcode and returns bootcamps inside the
// given distance in miles.
func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]entity.Bootcamp, error) {
	if distanceMiles <= 0 {
		return nil, apperr.ValidationMsg("distance must be a positive number of miles")
	}
	loc, err := s.Geo.Geocode(ctx, zipcode)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResult) {
			return nil, apperr.ValidationMsg("could not geocode zipcode %s", zipcode)
		}
		return nil, apperr.Upstream("geocoding failed", err)
	}
	out, err := s.Bootcamps.WithinRadius(ctx, loc.Latitude, loc.Longitude, distanceMiles)
	if err != nil {
		return nil, apperr.Server("radius query", err)
	}
	return out, nil
}

// UploadPhoto stores a bootcamp photo in GCS and records its public URL.
func (s *BootcampService) UploadPhoto(ctx context.Context, actor *entity.User, id string, r io.Reader, filename, contentType string, size int64) (string, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return "", translateBootcampErr(err, id)
	}
	if !actor.CanModify(b.UserID) {
		return "", apperr.Forbidden("User %s is not authorized to update this bootcamp", actor.ID)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperr.ValidationMsg("Please upload an image file")
	}
	if s.MaxPhotoSize > 0 && size > s.MaxPhotoSize {
		return "", apperr.ValidationMsg("Please upload an image less than %d bytes", s.MaxPhotoSize)
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.Server("photo storage not configured", nil)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := "photos/" + b.ID + ext
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apperr.Upstream("photo upload failed", err)
	}
	if err := s.Bootcamps.SetPhoto(ctx, id, url); err != nil {
		return "", apperr.Server("store photo url", err)
	}
	return url, nil
}

// Search runs a multi_match query over name, description and careers.
func (s *BootcampService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "careers"},
			},
		},
		"size": size,
	}
	buf, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(buf))),
	)
	if err != nil {
		return nil, apperr.Upstream("search failed", err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Upstream("decode search response", err)
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *BootcampService) resolveLocation(ctx context.Context, address string) (entity.Location, error) {
	loc, err := s.Geo.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, geocode.ErrNoResult) {
			return entity.Location{}, apperr.ValidationMsg("could not geocode address")
		}
		return entity.Location{}, apperr.Upstream("geocoding failed", err)
	}
	return entity.Location{
		Latitude:         loc.Latitude,
		Longitude:        loc.Longitude,
		FormattedAddress: loc.FormattedAddress,
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Zipcode:          loc.Zipcode,
		Country:          loc.Country,
	}, nil
}

func (s *BootcampService) index(ctx context.Context, b *entity.Bootcamp) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          b.ID,
		"name":        b.Name,
		"slug":        b.Slug,
		"description": b.Description,
		"careers":     b.Careers,
		"city":        b.Location.City,
		"state":       b.Location.State,
		"created_at":  b.CreatedAt.Format(time.RFC3339Nano),
	}
	buf, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: b.ID, Body: strings.NewReader(string(buf)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("bootcamp_id", b.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("bootcamp_id", b.ID).Warn("es index response error")
	}
}

func (s *BootcampService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("bootcamp_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

func validateCareers(careers []string) error {
	for _, c := range careers {
		valid := false
		for _, v := range entity.ValidCareers {
			if c == v {
				valid = true
				break
			}
		}
		if !valid {
			return apperr.ValidationMsg("career %q is not a recognized track", c)
		}
	}
	return nil
}

func translateBootcampErr(err error, id string) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound("Bootcamp not found with id of %s", id)
	}
	return apperr.Server("lookup bootcamp", err)
}

// boolValue resolves an optional flag to its stored form, defaulting to
// false when the field was absent from the request.
func boolValue(p *bool) bool {
	return p != nil && *p
}
