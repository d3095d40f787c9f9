package config

import (
	"log/slog"
	"regexp"
	"strconv"
)

// Normalize validates a raw (JSON-decoded) configuration object and returns a
// structurally valid Config. It never fails: every missing or invalid field is
// independently replaced by its default value and a warning is logged.
func Normalize(raw map[string]any) *Config {
	logger := slog.With("name", "config")
	res := Default()
	if raw == nil {
		logger.Warn("no configuration provided => using the default configuration")
		return res
	}
	if regex, ok := normalizeRegex(raw["pull_request_title_regex"]); ok {
		res.PullRequestTitleRegex = regex
	} else {
		logger.Warn("pull_request_title_regex was not provided or not valid => falling back to the default regex",
			slog.String("default", DefaultPullRequestTitleRegex))
	}
	if regex, ok := normalizeRegex(raw["version_regex"]); ok {
		res.VersionRegex = regex
	} else {
		logger.Warn("version_regex was not provided or not valid => falling back to the default regex",
			slog.String("default", DefaultVersionRegex))
	}
	if value, ok := normalizeBool(raw["commit_changelog"]); ok {
		res.CommitChangelog = value
	} else {
		logger.Warn("commit_changelog was not provided or not valid => falling back to true")
	}
	if value, ok := normalizeBool(raw["comment_changelog"]); ok {
		res.CommentChangelog = value
	} else {
		logger.Warn("comment_changelog was not provided or not valid => falling back to false")
	}
	if prefix, ok := raw["header_prefix"].(string); ok && prefix != "" {
		res.HeaderPrefix = prefix
	} else {
		logger.Warn("header_prefix was not provided or not valid => falling back to the default prefix",
			slog.String("default", DefaultHeaderPrefix))
	}
	if groups, ok := normalizeGroups(raw["group_config"]); ok {
		res.Groups = groups
	} else {
		logger.Warn("group_config was not provided or not valid => falling back to the default (no grouping)")
	}
	return res
}

func normalizeRegex(value any) (*regexp.Regexp, bool) {
	pattern, ok := value.(string)
	if !ok || pattern == "" {
		return nil, false
	}
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false
	}
	return regex, true
}

func normalizeBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case float64:
		return v != 0, true
	case string:
		res, err := strconv.ParseBool(v)
		if err != nil {
			return false, false
		}
		return res, true
	default:
		return false, false
	}
}

// normalizeGroups validates the whole group_config sequence: if any element is
// invalid, the entire sequence is rejected (all-or-nothing), not just the bad element.
func normalizeGroups(value any) ([]Group, bool) {
	elements, ok := value.([]any)
	if !ok || len(elements) == 0 {
		return nil, false
	}
	res := make([]Group, 0, len(elements))
	for _, element := range elements {
		object, ok := element.(map[string]any)
		if !ok {
			return nil, false
		}
		title, ok := object["title"].(string)
		if !ok || title == "" {
			return nil, false
		}
		rawLabels, ok := object["labels"].([]any)
		if !ok || len(rawLabels) == 0 {
			return nil, false
		}
		labels := make([]string, 0, len(rawLabels))
		for _, rawLabel := range rawLabels {
			label, ok := rawLabel.(string)
			if !ok {
				return nil, false
			}
			labels = append(labels, label)
		}
		res = append(res, Group{Title: title, Labels: labels})
	}
	return res, true
}
