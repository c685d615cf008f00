package models

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID             string  `json:"id"`
	CategoryID     string  `json:"category_id"`
	CategoryName   string  `json:"category_name"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Unit           string  `json:"unit"`
	ImageURL       string  `json:"image_url"`
	StockQuantity  int     `json:"stock_quantity"`
	FarmerID       string  `json:"farmer_id"`
	FarmerUsername string  `json:"farmer_username"`
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

type CreateProductRequest struct {
	CategoryID    string  `json:"category_id" validate:"required"`
	Name          string  `json:"name" validate:"required,min=3,max=200"`
	Description   string  `json:"description" validate:"required"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Unit          string  `json:"unit" validate:"required"`
	ImageURL      string  `json:"image_url,omitempty" validate:"omitempty,url"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
}

type UpdateProductRequest struct {
	CategoryID    *string  `json:"category_id,omitempty"`
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Unit          *string  `json:"unit,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
}
