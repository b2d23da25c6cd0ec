package analytics

import "github.com/Mostafa1201/coding-challenge-solution/internal/config"

const (
	homePage  = "Visited home page"
	purchase  = "Purchased items in cart"
	blogPost  = "Visited blog post"
	addToCart = "Added item to cart"
)

func testLabels() config.LabelsConfig {
	return config.LabelsConfig{
		HomePage:  homePage,
		Purchase:  purchase,
		BlogPost:  blogPost,
		AddToCart: addToCart,
	}
}

func ev(name string, ts float64, user string) Event {
	return Event{Name: name, Timestamp: ts, UserID: user}
}
