package wordpress

import (
	"encoding/json"
	"strconv"
	"strings"

	"shoplocal/internal/domain/entity"
)

// noLocation is rendered when a listing carries neither city nor region.
const noLocation = "Location not set"

// flexString decodes a field that may arrive as a bare string or as the
// WordPress rendered-object shape {"rendered": "..."}.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*s = flexString(plain)

		return nil
	}

	var rendered struct {
		Rendered string `json:"rendered"`
		Raw      string `json:"raw"`
	}
	if err := json.Unmarshal(data, &rendered); err == nil {
		if rendered.Rendered != "" {
			*s = flexString(rendered.Rendered)
		} else {
			*s = flexString(rendered.Raw)
		}

		return nil
	}

	// Unknown shape: leave empty rather than failing the whole record.
	*s = ""

	return nil
}

// flexFloat decodes a numeric field that may arrive as a JSON number or as a
// numeric string ("4.5"), which Dokan uses for prices and ratings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat(num)

		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, parseErr := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if parseErr == nil {
			*f = flexFloat(parsed)
		} else {
			*f = 0
		}

		return nil
	}

	*f = 0

	return nil
}

// flexBool decodes a flag that may arrive as 0/1, a bool, or a "0"/"1" string.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "1", "true", `"1"`, `"true"`:
		*b = true
	default:
		*b = false
	}

	return nil
}

// rawImage is one entry of a listing's images array, or the object form of
// the featured-image field.
type rawImage struct {
	Thumbnail string `json:"thumbnail"`
	Src       string `json:"src"`
}

// rawMedia is a wp:featuredmedia record embedded via _embed.
type rawMedia struct {
	SourceURL    string `json:"source_url"`
	MediaDetails struct {
		Sizes map[string]struct {
			SourceURL string `json:"source_url"`
		} `json:"sizes"`
	} `json:"media_details"`
}

// rawEmbedded is the _embedded envelope of a WordPress REST record.
type rawEmbedded struct {
	FeaturedMedia []rawMedia `json:"wp:featuredmedia"`
}

// rawListing is the union of every GeoDirectory place shape observed in the
// wild. Alternate field names for the same attribute are decoded side by side
// and collapsed by the normalizer.
type rawListing struct {
	ID    int64      `json:"id"`
	Title flexString `json:"title"`
	Name  string     `json:"name"`
	Slug  string     `json:"slug"`

	// The featured image arrives as an object, a bare string URL, or not at
	// all; the raw bytes are probed by resolveImage.
	FeaturedImage json.RawMessage `json:"featured_image"`
	Images        []rawImage      `json:"images"`
	DefaultImage  string          `json:"default_image"`
	Embedded      *rawEmbedded    `json:"_embedded"`

	RatingAverage flexFloat `json:"rating_average"`
	OverallRating flexFloat `json:"overall_rating"`
	Rating        flexFloat `json:"rating"`
	PostRating    flexFloat `json:"post_rating"`

	City   string `json:"city"`
	Region string `json:"region"`

	Claimed    flexBool `json:"claimed"`
	Status     string   `json:"status"`
	PostStatus string   `json:"post_status"`

	Author   int64 `json:"author"`
	AuthorID int64 `json:"author_id"`
}

// resolveImage picks the single best-available image URL across the five
// possible source shapes. Precedence, first non-empty wins:
//
//  1. featured-image object thumbnail
//  2. featured-image object src (a bare-string featured image slots here)
//  3. embedded featured-media thumbnail size
//  4. embedded featured-media source URL
//  5. images array first thumbnail
//  6. images array first src
//  7. default image
//
// Absence of all seven yields ("", false); callers render a placeholder and
// never issue a request for an empty URL.
func resolveImage(raw *rawListing) (string, bool) {
	if len(raw.FeaturedImage) > 0 {
		var obj rawImage
		if err := json.Unmarshal(raw.FeaturedImage, &obj); err == nil {
			if obj.Thumbnail != "" {
				return obj.Thumbnail, true
			}
			if obj.Src != "" {
				return obj.Src, true
			}
		}

		var bare string
		if err := json.Unmarshal(raw.FeaturedImage, &bare); err == nil && bare != "" {
			return bare, true
		}
	}

	if raw.Embedded != nil && len(raw.Embedded.FeaturedMedia) > 0 {
		media := raw.Embedded.FeaturedMedia[0]
		if thumb, ok := media.MediaDetails.Sizes["thumbnail"]; ok && thumb.SourceURL != "" {
			return thumb.SourceURL, true
		}
		if media.SourceURL != "" {
			return media.SourceURL, true
		}
	}

	if len(raw.Images) > 0 {
		if raw.Images[0].Thumbnail != "" {
			return raw.Images[0].Thumbnail, true
		}
		if raw.Images[0].Src != "" {
			return raw.Images[0].Src, true
		}
	}

	if raw.DefaultImage != "" {
		return raw.DefaultImage, true
	}

	return "", false
}

// resolveRating collapses the alternate rating fields, first non-zero wins.
func resolveRating(raw *rawListing) float64 {
	for _, candidate := range []flexFloat{raw.RatingAverage, raw.OverallRating, raw.Rating, raw.PostRating} {
		if candidate != 0 {
			return float64(candidate)
		}
	}

	return 0
}

// resolveLocation renders the human-readable location string.
func resolveLocation(city, region string) string {
	city = strings.TrimSpace(city)
	region = strings.TrimSpace(region)

	switch {
	case city != "" && region != "":
		return city + ", " + region
	case city != "":
		return city
	case region != "":
		return region
	default:
		return noLocation
	}
}

// toListing reduces a raw place record to the canonical Listing.
func toListing(raw *rawListing) entity.Listing {
	name := string(raw.Title)
	if name == "" {
		name = raw.Name
	}

	status := raw.Status
	if status == "" {
		status = raw.PostStatus
	}

	authorID := raw.Author
	if authorID == 0 {
		authorID = raw.AuthorID
	}

	logo, _ := resolveImage(raw)

	return entity.Listing{
		ID:       raw.ID,
		Name:     name,
		Slug:     raw.Slug,
		Logo:     logo,
		Rating:   resolveRating(raw),
		Location: resolveLocation(raw.City, raw.Region),
		Claimed:  bool(raw.Claimed),
		Status:   status,
		AuthorID: authorID,
	}
}

// rawProduct is the union of the Dokan/WooCommerce product shapes.
type rawProduct struct {
	ID               int64           `json:"id"`
	Name             flexString      `json:"name"`
	Title            flexString      `json:"title"`
	Slug             string          `json:"slug"`
	Price            flexFloat       `json:"price"`
	RegularPrice     flexFloat       `json:"regular_price"`
	Description      flexString      `json:"description"`
	ShortDescription flexString      `json:"short_description"`
	Status           string          `json:"status"`
	FeaturedImage    json.RawMessage `json:"featured_image"`
	Images           []rawImage      `json:"images"`
	Image            string          `json:"image"`
}

// toProduct reduces a raw product record to the canonical Product.
func toProduct(raw *rawProduct) entity.Product {
	name := string(raw.Name)
	if name == "" {
		name = string(raw.Title)
	}

	price := float64(raw.Price)
	if price == 0 {
		price = float64(raw.RegularPrice)
	}

	description := string(raw.Description)
	if description == "" {
		description = string(raw.ShortDescription)
	}

	image := resolveProductImage(raw)

	return entity.Product{
		ID:          raw.ID,
		Name:        name,
		Slug:        raw.Slug,
		Price:       price,
		Description: description,
		Status:      raw.Status,
		Image:       image,
	}
}

// resolveProductImage reuses the listing precedence for the shapes products
// actually exhibit: featured image, images array, bare image string.
func resolveProductImage(raw *rawProduct) string {
	listingShaped := &rawListing{
		FeaturedImage: raw.FeaturedImage,
		Images:        raw.Images,
		DefaultImage:  raw.Image,
	}

	image, _ := resolveImage(listingShaped)

	return image
}
