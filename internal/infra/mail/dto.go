package mail

type EmailSender struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	BrandName   string
	TrackingURL string // base URL of the activity tracking endpoint
	TemplateDir string
}

type LeadEmailData struct {
	Name      string
	BrandName string
	ClickURL  string
	PixelURL  string
}
