package email

// PreviewData holds sample values for rendering each template locally:
// templateName -> (templateVariable -> exampleValue).
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserFirstName": "John",
		"Username":      "john.doe",
	},
}
