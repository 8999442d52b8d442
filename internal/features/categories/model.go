// ================== internal/features/categories/model.go ==================
package categories

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a shared task label. Categories have no owner and cannot be
// renamed, so tasks may safely denormalize the name.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// CategoryResponse is the JSON representation of a category
type CategoryResponse struct {
	ID   string `json:"id" example:"507f1f77bcf86cd799439011"`
	Name string `json:"name" example:"Work"`
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:   c.ID.Hex(),
		Name: c.Name,
	}
}

// ToResponses converts a slice of categories, never returning nil so empty
// lists serialize as [] rather than null.
func ToResponses(cats []Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(cats))
	for i := range cats {
		responses = append(responses, cats[i].ToResponse())
	}
	return responses
}

// CreateCategoryRequest represents category creation data
type CreateCategoryRequest struct {
	Name string `json:"name" example:"Work"`
}
