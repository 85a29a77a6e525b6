package service

import "github.com/dtroode/fyx-storefront/internal/model"

const unsplash = "https://images.unsplash.com/"

func defaultSettings() model.Settings {
	return model.Settings{
		SiteName:              "FYX",
		ShippingFee:           29,
		FreeShippingThreshold: 999,
		ContactEmail:          "support@fyx.com",
		Currency:              "INR",
		TaxRate:               18,
	}
}

func defaultCategories() []string {
	return []string{
		"Photo Frames",
		"Posters",
		"Mugs",
		"Men's T-Shirts",
		"Women's T-Shirts",
		"Phone Covers",
		"Magazine",
		"Gift Accessories",
	}
}

func defaultPromotions() []model.Promotion {
	return []model.Promotion{{
		ID:          "1",
		Type:        model.PromotionBanner,
		Title:       "Free Shipping",
		Content:     "FREE SHIPPING ON ALL ORDERS ABOVE ₹999",
		Status:      model.PromotionActive,
		DisplayRule: model.DisplayImmediate,
		Closable:    true,
	}}
}

func image(photo string) string {
	return unsplash + photo + "?auto=format&fit=crop&q=80&w=800"
}

func defaultProducts() []model.Product {
	return []model.Product{
		{
			ID:                "1",
			Name:              "Photo Magazine",
			Description:       "Stories that inspire in high-quality print. Upload your favorite memories and we will compile them into a beautiful glossy magazine.",
			Price:             899,
			OldPrice:          999,
			DiscountBadge:     "-10%",
			Category:          "Magazine",
			Image:             image("photo-1544947950-fa07a98d237f"),
			Stock:             100,
			Featured:          true,
			AllowCustomImages: true,
			Options: []model.ProductOption{
				{Name: "Paper Finish", Values: []string{"Glossy", "Matte"}},
				{Name: "Pages", Values: []string{"20 Pages", "40 Pages", "60 Pages"}},
			},
			Reviews: []model.Review{
				{ID: "r1", UserName: "Aditi Sharma", Rating: 5, Text: "Absolutely loved the print quality!", Date: "2 days ago"},
				{ID: "r2", UserName: "Rohan Gupta", Rating: 4, Text: "Great delivery speed, paper is nice.", Date: "1 week ago"},
			},
		},
		{
			ID:                "2",
			Name:              "Sleek iPhone Case",
			Description:       "Protect in style with premium matte finish. Durable and lightweight.",
			Price:             249,
			OldPrice:          299,
			DiscountBadge:     "-17%",
			Category:          "Phone Covers",
			Image:             image("photo-1541807084-5c52b6b3adef"),
			Stock:             50,
			Featured:          true,
			AllowCustomImages: true,
			Options: []model.ProductOption{
				{Name: "Phone Model", Values: []string{"iPhone 13", "iPhone 14", "iPhone 15", "iPhone 15 Pro", "Samsung S23", "Samsung S24"}},
				{Name: "Finish", Values: []string{"Matte", "Glossy", "Transparent"}},
			},
			Reviews: []model.Review{
				{ID: "r3", UserName: "Mike T.", Rating: 5, Text: "Fits perfectly.", Date: "3 days ago"},
			},
		},
		{
			ID:                "3",
			Name:              "Custom Gift Box",
			Description:       "Perfect for every occasion and celebration.",
			Price:             99,
			OldPrice:          149,
			DiscountBadge:     "-34%",
			Category:          "Gift Accessories",
			Image:             image("photo-1513201099705-a9746e1e201f"),
			Stock:             200,
			Featured:          true,
			AllowCustomImages: true,
			Options: []model.ProductOption{
				{Name: "Ribbon Color", Values: []string{"Red", "Gold", "Silver", "Blue"}},
				{Name: "Box Size", Values: []string{"Small", "Medium", "Large"}},
			},
		},
		{
			ID:                "4",
			Name:              "Classic Men's Tee",
			Description:       "Wear your creativity with comfort. 100% Cotton, pre-shrunk fabric.",
			Price:             349,
			OldPrice:          399,
			DiscountBadge:     "-13%",
			Category:          "Men's T-Shirts",
			Image:             image("photo-1521572163474-6864f9cf17ab"),
			Stock:             150,
			Featured:          true,
			AllowCustomImages: true,
			Options: []model.ProductOption{
				{Name: "Size", Values: []string{"S", "M", "L", "XL", "XXL"}},
				{Name: "Color", Values: []string{"Black", "White", "Navy Blue", "Heather Grey", "Maroon"}},
			},
		},
		{
			ID:                "5",
			Name:              "Premium Women's Tee",
			Description:       "Style meets comfort for every day. Premium combed cotton.",
			Price:             329,
			OldPrice:          379,
			DiscountBadge:     "-13%",
			Category:          "Women's T-Shirts",
			Image:             image("photo-1503342217505-b0a15ec3261c"),
			Stock:             80,
			Featured:          true,
			AllowCustomImages: true,
			Options: []model.ProductOption{
				{Name: "Size", Values: []string{"XS", "S", "M", "L", "XL"}},
				{Name: "Color", Values: []string{"Black", "White", "Pink", "Lavender", "Yellow"}},
			},
		},
		{
			ID:                "6",
			Name:              "Abstract Art Poster",
			Description:       "Art that speaks to your unique style. High definition printing.",
			Price:             249,
			OldPrice:          299,
			DiscountBadge:     "-17%",
			Category:          "Posters",
			Image:             image("photo-1579783902614-a3fb3927b6a5"),
			Stock:             300,
			Featured:          true,
			AllowCustomImages: true,
			Options: []model.ProductOption{
				{Name: "Size", Values: []string{`A5 (5.8 x 8.3")`, `A4 (8.3 x 11.7")`, `A3 (11.7 x 16.5")`, `A2 (16.5 x 23.4")`}},
				{Name: "Material", Values: []string{"Glossy Paper", "Matte Paper", "Canvas Texture"}},
			},
		},
		{
			ID:                "7",
			Name:              "Ceramic Coffee Mug",
			Description:       "Start your day with warm memories. Microwave and dishwasher safe.",
			Price:             249,
			OldPrice:          299,
			DiscountBadge:     "-17%",
			Category:          "Mugs",
			Image:             image("photo-1514228742587-6b1558fcca3d"),
			Stock:             120,
			Featured:          true,
			AllowCustomImages: true,
			Options: []model.ProductOption{
				{Name: "Base Color", Values: []string{"White", "Black"}},
				{Name: "Capacity", Values: []string{"325ml (Standard)", "450ml (Large)"}},
			},
		},
		{
			ID:                "8",
			Name:              "Classic Wooden Frame",
			Description:       "Preserve your precious moments elegantly with handcrafted wood.",
			Price:             399,
			OldPrice:          499,
			DiscountBadge:     "-20%",
			Category:          "Photo Frames",
			Image:             image("photo-1582555172866-f73bb12a2ab3"),
			Stock:             90,
			Featured:          true,
			AllowCustomImages: true,
			Options: []model.ProductOption{
				{Name: "Frame Size", Values: []string{`6x8" (A5)`, `8x12" (A4)`, `12x16" (A3)`}},
				{Name: "Material", Values: []string{"Oak Wood", "Black Metal", "White Wood", "Walnut"}},
				{Name: "Mount", Values: []string{"With Mount", "No Mount"}},
			},
		},
	}
}
