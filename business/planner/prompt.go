package planner

import (
	"fmt"
	"strings"

	"bundleForge/domain"
)

const planSystemPrompt = `You are a senior e-commerce merchandiser with 15+ years of experience.
Given products with stock/price/tags, propose 3-5 bundles that are likely to convert this week.

Each bundle must include:
- name: Catchy bundle name
- rationale: Why this bundle will work (2-3 sentences)
- skus: Array of product IDs to include
- targetPrice: Suggested bundle price in cents
- discountPercent: Discount percentage to apply
- emailBlurb: Marketing copy for email (50-80 words)
- heroImageIdea: Description of ideal hero image for this bundle

Also provide:
- overallStrategy: 2-3 sentence strategy for the campaign
- targetAudience: Who should receive this campaign

Return valid JSON only with this exact structure:
{
  "theme": "string",
  "bundles": [Bundle],
  "overallStrategy": "string",
  "targetAudience": "string"
}`

func buildPlanUserPrompt(theme string, catalogSample []domain.CatalogItem) string {
	var listing strings.Builder
	for _, item := range catalogSample {
		mainImage := item.MainImage
		if mainImage == "" {
			mainImage = "No image available"
		}
		fmt.Fprintf(&listing, "- %s (ID: %s)\n    Price: %d cents\n    Stock: %d\n    Tags: %s\n    Main Image: %s\n",
			item.Name, item.ID, item.Price, item.Stock, strings.Join(item.Tags, ", "), mainImage)
	}

	return fmt.Sprintf(`
Theme: %s

Available Products:
%s
Create compelling bundles that maximize conversion and AOV. Consider product images when creating bundles - products with good images should be prioritized for visual marketing appeal.`, theme, listing.String())
}

// BuildImagePrompt describes the bundle photo for the image model.
func BuildImagePrompt(style, bundleName, theme string, productNames []string) string {
	return fmt.Sprintf("Create a %s style image for an e-commerce bundle called %q. "+
		"Show these products artfully arranged together: %s. "+
		"Style: clean white background, professional lighting, attractive product arrangement, premium e-commerce photography style. "+
		"The image should look like a high-end product bundle photo for a %s campaign. "+
		"Products should be clearly visible and attractively displayed together.",
		style, bundleName, strings.Join(productNames, ", "), strings.ToLower(theme))
}

const defaultImageStyle = "professional product photography"
