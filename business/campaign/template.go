package campaign

import (
	"fmt"
	"html/template"
	"strings"

	"bundleForge/domain"
)

var emailTemplate = template.Must(template.New("bundle-email").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Theme}} Bundles</title>
</head>
<body style="margin:0;padding:0;background-color:#f4f4f7;font-family:Helvetica,Arial,sans-serif;">
  <table role="presentation" width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:24px;">
      <table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;overflow:hidden;">
        <tr><td style="background:#667eea;padding:32px;text-align:center;">
          <h1 style="color:#ffffff;margin:0;">{{.Theme}} Bundles - Limited Time!</h1>
        </td></tr>
{{range .Bundles}}        <tr><td style="padding:24px;border-bottom:1px solid #eeeeee;">
{{if .BundleImageURL}}          <img src="{{.BundleImageURL}}" alt="{{.Name}}" width="552" style="display:block;width:100%;border-radius:4px;margin-bottom:16px;">
{{end}}          <h2 style="margin:0 0 8px 0;color:#333333;">{{.Name}}</h2>
          <p style="margin:0 0 12px 0;color:#555555;line-height:1.5;">{{.EmailBlurb}}</p>
          <p style="margin:0;color:#333333;">
            <strong>{{.PriceDisplay}}</strong>
            <span style="background:#667eea;color:#ffffff;border-radius:4px;padding:2px 8px;margin-left:8px;">{{.DiscountDisplay}} OFF</span>
          </p>
        </td></tr>
{{end}}        <tr><td style="padding:24px;text-align:center;color:#999999;font-size:12px;">
          Curated for you by our merchandising team.
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>
`))

type emailBundle struct {
	Name            string
	EmailBlurb      string
	BundleImageURL  string
	PriceDisplay    string
	DiscountDisplay string
}

type emailData struct {
	Theme   string
	Bundles []emailBundle
}

// RenderBundleEmail produces the static HTML email body from the bundle
// list. It is the default body when the caller supplies no custom HTML.
func RenderBundleEmail(theme string, bundleList []domain.Bundle) (string, error) {
	data := emailData{Theme: theme}
	for _, bundle := range bundleList {
		data.Bundles = append(data.Bundles, emailBundle{
			Name:            bundle.Name,
			EmailBlurb:      bundle.EmailBlurb,
			BundleImageURL:  bundle.BundleImageURL,
			PriceDisplay:    fmt.Sprintf("$%.2f", float64(bundle.TargetPrice)/100),
			DiscountDisplay: fmt.Sprintf("%.0f%%", bundle.DiscountPercent),
		})
	}

	var out strings.Builder
	if err := emailTemplate.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
