package core

import "fmt"

// Kind is the closed set of structured error kinds an installer run can
// fail with, surfaced to callers instead of opaque wrapped errors so a
// caller can branch on failure mode without string matching.
type Kind string

const (
	KindHierarchyLoop              Kind = "hierarchy_loop"
	KindVersionNotFound             Kind = "version_not_found"
	KindAssetsNotFound              Kind = "assets_not_found"
	KindClientNotFound              Kind = "client_not_found"
	KindLibraryNotFound              Kind = "library_not_found"
	KindJvmNotFound                  Kind = "jvm_not_found"
	KindMainClassNotFound            Kind = "main_class_not_found"
	KindDownloadResourcesCancelled   Kind = "download_resources_cancelled"
	KindDownload                     Kind = "download"
	KindLwjglFixNotFound             Kind = "lwjgl_fix_not_found"
	KindLatestVersionNotFound        Kind = "latest_version_not_found"
	KindGameVersionNotFound          Kind = "game_version_not_found"
	KindLoaderVersionNotFound        Kind = "loader_version_not_found"
	KindInstallerProfileNotFound     Kind = "installer_profile_not_found"
	KindInstallerProfileIncoherent   Kind = "installer_profile_incoherent"
	KindInstallerFileNotFound        Kind = "installer_file_not_found"
	KindInstallerProcessorNotFound   Kind = "installer_processor_not_found"
	KindInstallerMainClassNotFound   Kind = "installer_main_class_not_found"
	KindInstallerDependencyNotFound  Kind = "installer_dependency_not_found"
	KindInstallerProcessorFailed     Kind = "installer_processor_failed"
	KindInstallerProcessorCorrupted  Kind = "installer_processor_corrupted"
	KindMavenMetadataMalformed       Kind = "maven_metadata_malformed"
	KindInternal                     Kind = "internal"
)

// Error is the structured error every installer operation fails with: a
// Kind plus an Origin (the path or URL that was being processed) and an
// optional wrapped cause.
type Error struct {
	Kind     Kind
	Origin   string
	Cause    error
	Detail   string // free-form extra context (e.g. required_major, expected_sha1)
}

func (e *Error) Error() string {
	switch {
	case e.Cause != nil && e.Origin != "" && e.Detail != "":
		return fmt.Sprintf("%s: %s (%s): %v", e.Kind, e.Origin, e.Detail, e.Cause)
	case e.Cause != nil && e.Origin != "":
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Origin, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	case e.Origin != "" && e.Detail != "":
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Origin, e.Detail)
	case e.Origin != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Origin)
	default:
		return string(e.Kind)
	}
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, &Error{Kind: KindX}) match by Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Newf builds an *Error with a Kind and origin, optionally wrapping cause.
func Newf(kind Kind, origin string, cause error) *Error {
	return &Error{Kind: kind, Origin: origin, Cause: cause}
}

// WithDetail returns a copy of e with Detail set, for errors like
// JvmNotFound{required_major} or InstallerProcessorCorrupted{expected_sha1}.
func (e *Error) WithDetail(detail string) *Error {
	c := *e
	c.Detail = detail
	return &c
}

// Internal wraps an arbitrary I/O/JSON/ZIP/HTTP error as KindInternal, the
// catch-all kind for failures that don't fit a more specific category.
func Internal(origin string, cause error) *Error {
	return Newf(KindInternal, origin, cause)
}
