package layout

// AppName is shown in every page title
const AppName = "كأس بدن"

// PageData holds data common to every page
type PageData struct {
	Title string
}

// FullTitle returns "Title | AppName", or just the app name for an empty title
func (p PageData) FullTitle() string {
	if p.Title == "" {
		return AppName
	}
	return p.Title + " | " + AppName
}
