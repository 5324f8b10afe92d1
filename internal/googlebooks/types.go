package googlebooks

import "strings"

// Volume mirrors one item from the volumes API. Only the fields the screens
// render are decoded; the upstream payload carries far more.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo holds the book metadata nested under each volume.
type VolumeInfo struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Authors       []string   `json:"authors"`
	Publisher     string     `json:"publisher"`
	PublishedDate string     `json:"publishedDate"`
	Description   string     `json:"description"`
	PageCount     int        `json:"pageCount"`
	Categories    []string   `json:"categories"`
	AverageRating float64    `json:"averageRating"`
	RatingsCount  int        `json:"ratingsCount"`
	ImageLinks    ImageLinks `json:"imageLinks"`
	Language      string     `json:"language"`
}

// ImageLinks maps the cover sizes the list endpoint returns.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

// volumeListResponse mirrors the search payload. Items is absent entirely
// when a query matches nothing.
type volumeListResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// AuthorLine joins the author list for display. Empty when the upstream
// record carries no authors.
func (v Volume) AuthorLine() string {
	return strings.Join(v.VolumeInfo.Authors, ", ")
}

// CoverURL returns the best available cover image URL. The API hands out
// http links; they redirect fine over https, so upgrade the scheme.
func (v Volume) CoverURL() string {
	link := v.VolumeInfo.ImageLinks.Thumbnail
	if link == "" {
		link = v.VolumeInfo.ImageLinks.SmallThumbnail
	}
	if strings.HasPrefix(link, "http://") {
		link = "https://" + strings.TrimPrefix(link, "http://")
	}
	return link
}

// HasRating reports whether the volume carries a usable average rating.
func (v Volume) HasRating() bool {
	return v.VolumeInfo.AverageRating > 0
}
