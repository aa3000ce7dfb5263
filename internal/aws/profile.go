package aws

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

var (
	credentialsSectionRe = regexp.MustCompile(`^\[([^\]]+)\]$`)
	configSectionRe      = regexp.MustCompile(`^\[profile\s+([^\]]+)\]$`)
	configDefaultRe      = regexp.MustCompile(`^\[default\]$`)
	regionRe             = regexp.MustCompile(`^\s*region\s*=\s*(.+)$`)
)

// sharedFiles returns the shared config and credentials paths, honouring
// AWS_CONFIG_FILE and AWS_SHARED_CREDENTIALS_FILE like the SDK does
func sharedFiles() (configPath, credentialsPath string) {
	home, _ := os.UserHomeDir()

	configPath = os.Getenv("AWS_CONFIG_FILE")
	if configPath == "" {
		configPath = filepath.Join(home, ".aws", "config")
	}
	credentialsPath = os.Getenv("AWS_SHARED_CREDENTIALS_FILE")
	if credentialsPath == "" {
		credentialsPath = filepath.Join(home, ".aws", "credentials")
	}
	return configPath, credentialsPath
}

// ListProfiles reads AWS profiles from the shared config and credentials files
func ListProfiles() ([]pkgtypes.AWSProfile, error) {
	return listProfiles(sharedFiles())
}

// listProfiles merges both files. Missing files are skipped; "default" sorts
// first, the rest alphabetically.
func listProfiles(configPath, credentialsPath string) ([]pkgtypes.AWSProfile, error) {
	byName := make(map[string]pkgtypes.AWSProfile)

	for _, src := range []struct {
		path     string
		source   string
		isConfig bool
	}{
		{credentialsPath, "credentials", false},
		{configPath, "config", true},
	} {
		profiles, err := parseINIFile(src.path, src.source, src.isConfig)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src.path, err)
		}
		for _, p := range profiles {
			existing, ok := byName[p.Name]
			if !ok {
				byName[p.Name] = p
				continue
			}
			if existing.Region == "" {
				existing.Region = p.Region
				byName[p.Name] = existing
			}
		}
	}

	profiles := make([]pkgtypes.AWSProfile, 0, len(byName))
	for _, p := range byName {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Name == "default" || profiles[j].Name == "default" {
			return profiles[i].Name == "default"
		}
		return profiles[i].Name < profiles[j].Name
	})
	return profiles, nil
}

// checkProfile returns ErrNotFound, naming the known profiles, when name is
// in neither shared file
func checkProfile(configPath, credentialsPath, name string) error {
	profiles, err := listProfiles(configPath, credentialsPath)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if p.Name == name {
			return nil
		}
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		return fmt.Errorf("profile %q: no profiles configured: %w", name, ErrNotFound)
	}
	return fmt.Errorf("profile %q (known: %s): %w", name, strings.Join(names, ", "), ErrNotFound)
}

// parseINIFile parses an AWS INI-style file. Config files name sections
// "[profile x]" except "[default]"; credentials files use "[x]".
func parseINIFile(path, source string, isConfigFile bool) ([]pkgtypes.AWSProfile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var profiles []pkgtypes.AWSProfile
	var current *pkgtypes.AWSProfile

	start := func(name string) {
		if current != nil {
			profiles = append(profiles, *current)
		}
		current = &pkgtypes.AWSProfile{Name: strings.TrimSpace(name), Source: source}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if isConfigFile {
			if configDefaultRe.MatchString(line) {
				start("default")
				continue
			}
			if m := configSectionRe.FindStringSubmatch(line); len(m) == 2 {
				start(m[1])
				continue
			}
			if strings.HasPrefix(line, "[") {
				// sso-session and services sections are not profiles
				if current != nil {
					profiles = append(profiles, *current)
				}
				current = nil
				continue
			}
		} else if m := credentialsSectionRe.FindStringSubmatch(line); len(m) == 2 {
			start(m[1])
			continue
		}

		if current != nil {
			if m := regionRe.FindStringSubmatch(line); len(m) == 2 {
				current.Region = strings.TrimSpace(m[1])
			}
		}
	}
	if current != nil {
		profiles = append(profiles, *current)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
