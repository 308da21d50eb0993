// Package paths derives every destination-relative path of a generated
// project from a basename and a platform.
//
// All functions are pure: they perform no I/O and depend only on their
// arguments and the Layout the Deriver was built with. Given the default
// layout and basename "Acme":
//
//	ProjectName(Acme, macOS)  Acme-macOS
//	SrcDir(Acme, macOS)       macos/Acme-macOS
//	BundleProject(Acme)       macos/Acme.xcodeproj
//	Workspace(Acme)           macos/Acme.xcworkspace
//	ProjectDescriptor(Acme)   macos/Acme.xcodeproj/project.pbxproj
//	SchemesDir(Acme)          macos/Acme.xcodeproj/xcshareddata/xcschemes
//	SchemeFile(Acme, macOS)   macos/Acme.xcodeproj/xcshareddata/xcschemes/Acme-macOS.xcscheme
//
// ProjectName joins with a literal hyphen, so it cannot be inverted when the
// basename itself contains hyphens. That is a known limitation.
package paths
