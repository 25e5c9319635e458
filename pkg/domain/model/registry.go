package model

// Project is a registry project that applications are installed into
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Package is a published revision of a DPK
type Package struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	DisplayName string `json:"displayName"`
}

// App is an installed application. There is at most one per (project, name).
type App struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProjectID  string `json:"projectId"`
	DpkName    string `json:"dpkName"`
	DpkVersion string `json:"dpkVersion"`
}
