package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service handles the comment threads attached to catalog parts.
type Service interface {
	GetTree(ctx context.Context, partID int64) ([]Comment, error)
	Create(ctx context.Context, partID int64, input CreateInput) (*Comment, error)
}

// CreateInput is a new comment. ParentID nil makes a root comment; ratings
// are only honored on roots.
type CreateInput struct {
	UserID   int64
	ParentID *int64
	Rating   *int
	Body     string
}

// Comment is a review enriched with author info and nested replies.
type Comment struct {
	ReviewID  int64      `json:"reviewId"`
	PartID    int64      `json:"partId"`
	UserID    int64      `json:"userId"`
	UserEmail *string    `json:"userEmail"`
	FullName  *string    `json:"fullName"`
	ParentID  *int64     `json:"parentId"`
	Rating    *int       `json:"rating"`
	Body      string     `json:"body"`
	CreatedAt *time.Time `json:"createdAt"`
	Children  []Comment  `json:"children"`
}

type service struct {
	dbClient *db.Client
}

// NewService constructs a reviews service instance.
func NewService(dbClient *db.Client) (Service, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{dbClient: dbClient}, nil
}

// GetTree loads every comment for the part and nests replies under their
// parents, ordered by creation time.
func (s *service) GetTree(ctx context.Context, partID int64) ([]Comment, error) {
	var reviews []models.PartReview
	err := s.dbClient.DB().WithContext(ctx).
		Where(`"PartId" = ?`, partID).
		Order(`"CreatedAt"`).
		Find(&reviews).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reviews")
	}

	authors, err := s.loadAuthors(ctx, reviews)
	if err != nil {
		return nil, err
	}

	flat := make([]Comment, 0, len(reviews))
	for _, r := range reviews {
		flat = append(flat, s.toComment(r, authors))
	}
	return BuildTree(flat, nil), nil
}

// Create persists a comment after validating part and parent. Replies never
// carry a rating; out-of-range ratings are nulled instead of rejected.
func (s *service) Create(ctx context.Context, partID int64, input CreateInput) (*Comment, error) {
	if input.UserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userId es obligatorio")
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "El comentario no puede estar vacío")
	}

	var partCount int64
	if err := s.dbClient.DB().WithContext(ctx).Model(&models.Part{}).
		Where(`"PartId" = ?`, partID).Count(&partCount).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking part")
	}
	if partCount == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Repuesto no encontrado")
	}

	if input.ParentID != nil {
		var parent models.PartReview
		err := s.dbClient.DB().WithContext(ctx).First(&parent, `"ReviewId" = ?`, *input.ParentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && parent.PartID != partID) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Comentario padre no encontrado")
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading parent review")
		}
	}

	rating := input.Rating
	if input.ParentID != nil {
		rating = nil
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		rating = nil
	}

	now := time.Now().UTC()
	review := models.PartReview{
		PartID:    partID,
		UserID:    input.UserID,
		ParentID:  input.ParentID,
		Rating:    rating,
		Body:      body,
		CreatedAt: &now,
	}
	if err := s.dbClient.DB().WithContext(ctx).Create(&review).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating review")
	}

	authors, err := s.loadAuthors(ctx, []models.PartReview{review})
	if err != nil {
		return nil, err
	}
	comment := s.toComment(review, authors)
	comment.Children = []Comment{}
	return &comment, nil
}

func (s *service) loadAuthors(ctx context.Context, reviews []models.PartReview) (map[int64]models.AppUser, error) {
	ids := make([]int64, 0, len(reviews))
	seen := map[int64]bool{}
	for _, r := range reviews {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}
	authors := map[int64]models.AppUser{}
	if len(ids) == 0 {
		return authors, nil
	}

	var users []models.AppUser
	if err := s.dbClient.DB().WithContext(ctx).
		Where(`"UserId" IN ?`, ids).Find(&users).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading review authors")
	}
	for _, u := range users {
		authors[u.UserID] = u
	}
	return authors, nil
}

func (s *service) toComment(r models.PartReview, authors map[int64]models.AppUser) Comment {
	c := Comment{
		ReviewID:  r.ReviewID,
		PartID:    r.PartID,
		UserID:    r.UserID,
		ParentID:  r.ParentID,
		Rating:    r.Rating,
		Body:      r.Body,
		CreatedAt: r.CreatedAt,
		Children:  []Comment{},
	}
	if author, ok := authors[r.UserID]; ok {
		email := author.Email
		c.UserEmail = &email
		c.FullName = author.FullName
	}
	return c
}

// BuildTree nests the flat comment list under the given parent. Order within
// a level follows the input order.
func BuildTree(flat []Comment, parentID *int64) []Comment {
	out := []Comment{}
	for _, c := range flat {
		if !sameParent(c.ParentID, parentID) {
			continue
		}
		id := c.ReviewID
		c.Children = BuildTree(flat, &id)
		out = append(out, c)
	}
	return out
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
