package product

import "kisan-be/internal/money"

// ToCatalogItem resolves the display image, falling back to placeholder.
func ToCatalogItem(p Product, imageURL, placeholder string) CatalogItem {
	if imageURL == "" {
		imageURL = placeholder
	}
	return CatalogItem{
		Product:      p,
		PriceDisplay: money.Format(p.Price),
		ImageURL:     imageURL,
	}
}

func ToDetail(p Product, images []Image) *Detail {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, img.URL)
	}
	return &Detail{
		Product:      p,
		PriceDisplay: money.Format(p.Price),
		Images:       urls,
	}
}
