package web

// Article is one static guide rendered by the guide pages. Content is
// compiled in; there is no CMS behind it.
type Article struct {
	Slug     string
	Title    string
	Subtitle string
	Category string
	Excerpt  string
	Image    string
	Sections []ArticleSection
}

// ArticleSection is a heading with bullet points.
type ArticleSection struct {
	Heading string
	Bullets []string
}

var articles = []Article{
	{
		Slug:     "buy",
		Title:    "Buy a home: 5 steps",
		Subtitle: "A clear path from first viewing to signed contract.",
		Category: "Guide",
		Excerpt:  "Checklist for viewing, bidding, and contracts.",
		Image:    "https://images.unsplash.com/photo-1505691938895-1758d7feb511?auto=format&fit=crop&w=800&q=60",
		Sections: []ArticleSection{
			{Heading: "1) Set your search", Bullets: []string{
				"Save filters for area, price, and type to catch new listings fast.",
				"Enable alerts so you see homes the moment they are listed.",
			}},
			{Heading: "2) View & compare", Bullets: []string{
				"Book viewings directly with the agent; prepare 2–3 options to compare.",
				"Take notes on condition, light, noise, and potential renovations.",
			}},
			{Heading: "3) Run your numbers", Bullets: []string{
				"Align with your bank on max budget, rate, and amortization.",
				"Include fees, insurance, and monthly costs in your estimate.",
			}},
			{Heading: "4) Bid with confidence", Bullets: []string{
				"Agree on bidding rules and timeline with the agent before you start.",
				"Be ready to show financing confirmation if requested.",
			}},
			{Heading: "5) Contract & handover", Bullets: []string{
				"Include inspection, financing, and move-in terms in the contract.",
				"Confirm utilities, keys, and final walk-through date.",
			}},
		},
	},
	{
		Slug:     "sell",
		Title:    "Sell faster",
		Subtitle: "Raise impact with better visuals, copy, and timing.",
		Category: "Selling",
		Excerpt:  "Boost your listing with stronger photos and copy.",
		Image:    "https://images.unsplash.com/photo-1505693416388-ac5ce068fe85?auto=format&fit=crop&w=800&q=60",
		Sections: []ArticleSection{
			{Heading: "Prep and styling", Bullets: []string{
				"Declutter, neutralize colors, and add light to key rooms.",
				"Fix small defects; they reduce friction and boost perceived quality.",
			}},
			{Heading: "Photos & copy", Bullets: []string{
				"Hire a pro photographer; focus on first photo and living areas.",
				"Write crisp copy: highlight light, layout, storage, and nearby transit.",
			}},
			{Heading: "Pricing & timing", Bullets: []string{
				"Align pricing with recent comparables; avoid overpricing early.",
				"List mid-week for peak attention; coordinate viewings close together.",
			}},
			{Heading: "During showings", Bullets: []string{
				"Provide a fact sheet with fees, renovations, and floor plan.",
				"Collect questions and answer quickly; momentum matters.",
			}},
		},
	},
	{
		Slug:     "finance",
		Title:    "Financing",
		Subtitle: "Understand rate, amortization, and down payment basics.",
		Category: "Finance",
		Excerpt:  "What interest, amortization, and down payment mean.",
		Image:    "https://images.unsplash.com/photo-1493663284031-b7e3aefcae8e?auto=format&fit=crop&w=800&q=60",
		Sections: []ArticleSection{
			{Heading: "Down payment", Bullets: []string{
				"Typical minimum is 15% of the purchase price.",
				"Higher down payment lowers your monthly cost and rate risk.",
			}},
			{Heading: "Interest rate", Bullets: []string{
				"Fixed rate gives predictability; variable can benefit in falling rate environments.",
				"Run scenarios (±1–2%) to see how payment changes over time.",
			}},
			{Heading: "Amortization", Bullets: []string{
				"Longer terms reduce monthly cost but raise total interest paid.",
				"Match term to your horizon; overpay when you can to cut interest.",
			}},
			{Heading: "Extra costs", Bullets: []string{
				"Include insurance, fees, taxes, and monthly charges in your budget.",
				"Keep a buffer for maintenance and unexpected repairs.",
			}},
		},
	},
}

// Articles returns all guide articles in display order.
func Articles() []Article {
	return articles
}

// FindArticle looks an article up by slug, defaulting to the buyer
// guide for unknown slugs.
func FindArticle(slug string) Article {
	for _, a := range articles {
		if a.Slug == slug {
			return a
		}
	}
	return articles[0]
}
