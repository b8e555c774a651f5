// Package parser converts catalog XML into addon records.
package parser

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"addon-catalog/core/types"
	"addon-catalog/internal/errors"
)

// dateFormats are tried in priority order; the first that matches wins.
// The non-padded layouts accept both "1/5/2025" and "01/05/2025".
var dateFormats = []string{"1/2/2006", "1/2/06"}

type xmlCatalog struct {
	Addons []xmlAddon `xml:"addon"`
}

type xmlAddon struct {
	ID             string        `xml:"ID,attr"`
	Description    string        `xml:"Description,attr"`
	Version        string        `xml:"Version,attr"`
	AvailableDate  string        `xml:"AvailableDate,attr"`
	ExpirationDate string        `xml:"ExpirationDate,attr"`
	Platforms      []xmlPlatform `xml:"SupportedPlatforms>platform"`
	OSes           []xmlOS       `xml:"OSes>OS"`
	Architecture   string        `xml:"architecture"`
	InstallCommand string        `xml:"install_command"`
	Files          xmlFiles      `xml:"files"`
}

type xmlPlatform struct {
	ID   string `xml:"ID,attr"`
	Text string `xml:",chardata"`
}

type xmlOS struct {
	Version string `xml:"Version,attr"`
	Type    string `xml:"Type,attr"`
	Text    string `xml:",chardata"`
}

type xmlFiles struct {
	Entries []xmlFileEntry `xml:",any"`
}

type xmlFileEntry struct {
	XMLName xml.Name
	Size    string `xml:"size,attr"`
	Path    string `xml:",chardata"`
}

// Parse converts catalog XML text into a list of addon records. It fails
// only on structurally invalid markup or an unrecognized date value;
// missing optional fields are treated as absent.
func Parse(xmlText string) ([]types.Addon, error) {
	var doc xmlCatalog
	if err := xml.Unmarshal([]byte(xmlText), &doc); err != nil {
		return nil, errors.Parsing("malformed catalog XML", err)
	}

	addons := make([]types.Addon, 0, len(doc.Addons))
	for _, elem := range doc.Addons {
		available, err := parseDate(elem.AvailableDate)
		if err != nil {
			return nil, err
		}
		expiration, err := parseDate(elem.ExpirationDate)
		if err != nil {
			return nil, err
		}
		osVersions, osTypes := collectOSFields(elem.OSes)
		addons = append(addons, types.Addon{
			ID:             strings.TrimSpace(elem.ID),
			Description:    strings.TrimSpace(elem.Description),
			Version:        strings.TrimSpace(elem.Version),
			AvailableDate:  available,
			ExpirationDate: expiration,
			Platforms:      collectPlatformIDs(elem.Platforms),
			OSVersions:     osVersions,
			OSTypes:        osTypes,
			Architecture:   strings.TrimSpace(elem.Architecture),
			InstallCommand: strings.TrimSpace(elem.InstallCommand),
			Files:          collectFiles(elem.Files),
		})
	}
	return addons, nil
}

// parseDate tries each known layout in order. Empty input means the date
// is absent; a non-empty value that matches no layout is an error.
func parseDate(value string) (*types.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return &types.Date{Time: t}, nil
		}
	}
	return nil, errors.Newf(errors.TypeParsing, "unrecognized date format: %q", value)
}

func collectPlatformIDs(elems []xmlPlatform) []string {
	platforms := make([]string, 0, len(elems))
	for _, p := range elems {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			id = strings.TrimSpace(p.Text)
		}
		if id != "" {
			platforms = append(platforms, id)
		}
	}
	return platforms
}

func collectOSFields(elems []xmlOS) (versions, osTypes []string) {
	versions = make([]string, 0, len(elems))
	osTypes = make([]string, 0, len(elems))
	for _, o := range elems {
		version := strings.TrimSpace(o.Version)
		if version == "" {
			version = strings.TrimSpace(o.Text)
		}
		if version != "" {
			versions = append(versions, version)
		}
		if t := strings.TrimSpace(o.Type); t != "" {
			osTypes = append(osTypes, t)
		}
	}
	return versions, osTypes
}

func collectFiles(files xmlFiles) []types.FileEntry {
	entries := make([]types.FileEntry, 0, len(files.Entries))
	for _, f := range files.Entries {
		entries = append(entries, types.FileEntry{
			Kind: f.XMLName.Local,
			Path: strings.TrimSpace(f.Path),
			Size: parseSize(f.Size),
		})
	}
	return entries
}

// parseSize returns nil for absent or non-numeric size attributes.
func parseSize(value string) *int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
