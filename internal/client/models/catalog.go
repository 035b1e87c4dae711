package models

// Product is a marketplace listing.
type Product struct {
	ID          int64   `json:"id"`
	SellerID    int64   `json:"seller_id"`
	SellerName  string  `json:"seller_name"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	// sqlite booleans arrive as 0/1
	IsOrganic int    `json:"is_organic"`
	Image     string `json:"image"`
}

// Organic reports whether the listing is flagged organic.
func (p Product) Organic() bool { return p.IsOrganic != 0 }

// NewProduct is the request body for creating a listing.
type NewProduct struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit,omitempty"`
	Quantity    float64 `json:"quantity,omitempty"`
	IsOrganic   int     `json:"is_organic,omitempty"`
}

// Tip is a farming tip article.
type Tip struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	Content    string `json:"content"`
	AuthorName string `json:"author_name"`
	Tags       string `json:"tags"`
	Language   string `json:"language"`
	Views      int64  `json:"views"`
	Likes      int64  `json:"likes"`
}

// Scheme is a government support scheme entry.
type Scheme struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Eligibility string `json:"eligibility"`
	Benefits    string `json:"benefits"`
	State       string `json:"state"`
	Link        string `json:"link"`
}

// ForumPost is a discussion thread head.
type ForumPost struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	AuthorName    string `json:"author_name"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	Tags          string `json:"tags"`
	CommentsCount int64  `json:"comments_count"`
	IsPinned      int    `json:"is_pinned"`
	CreatedAt     string `json:"created_at"`
}

// NewForumPost is the request body for opening a thread.
type NewForumPost struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
	Tags     string `json:"tags,omitempty"`
}

// ForumComment is one reply in a thread.
type ForumComment struct {
	ID         int64  `json:"id"`
	PostID     int64  `json:"post_id"`
	UserID     int64  `json:"user_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}
