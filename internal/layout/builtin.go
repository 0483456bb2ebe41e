package layout

import (
	"slices"
	"strings"
)

const DefaultName = "heal-sync"

const readmeTitle = "# Heal-Sync: Blockchain-Based Organ Donation System"

var healSync = Layout{
	Name:        DefaultName,
	Description: "Next.js + blockchain organ donation skeleton",
	Folders: []string{
		"src",
		"src/app",
		"src/app/api",
		"src/app/components",
		"src/app/pages",
		"src/app/styles",
		"src/lib",
		"src/blockchain/contracts",
		"src/blockchain/scripts",
		"src/hooks",
		"public",
	},
	Files: []File{
		{Path: ".gitignore"},
		{Path: "next.config.js"},
		{Path: "package.json"},
		{Path: "README.md", Content: readmeTitle},
		{Path: "tsconfig.json"},
		{Path: "src/app/api/auth.ts", Content: "// Firebase Authentication API"},
		{Path: "src/app/api/donor.ts", Content: "// API for Donor Data"},
		{Path: "src/app/api/recipient.ts", Content: "// API for Recipient Data"},
		{Path: "src/app/api/matching.ts", Content: "// API for Rule-Based Matching"},
		{Path: "src/app/pages/index.tsx", Content: "// Landing Page"},
		{Path: "src/app/pages/dashboard.tsx", Content: "// User Dashboard"},
		{Path: "src/app/pages/register.tsx", Content: "// Donor & Recipient Registration"},
		{Path: "src/lib/firebase.ts", Content: "// Firebase setup"},
		{Path: "src/lib/mongodb.ts", Content: "// MongoDB connection setup"},
		{Path: "src/blockchain/contracts/DonorRecipient.sol", Content: "// Solidity Smart Contract"},
		{Path: "src/blockchain/scripts/deploy.js", Content: "// Deployment Script"},
	},
}

var builtins = []Layout{healSync}

// Default returns a copy of the Heal-Sync skeleton.
func Default() Layout {
	return healSync.Clone()
}

// Find looks up a built-in layout by case-insensitive name.
func Find(name string) (Layout, bool) {
	name = NormalizeName(name)
	for _, l := range builtins {
		if l.Name == name {
			return l.Clone(), true
		}
	}
	return Layout{}, false
}

func List() []Layout {
	out := make([]Layout, len(builtins))
	for i, l := range builtins {
		out[i] = l.Clone()
	}
	return out
}

func Names() []string {
	names := make([]string, 0, len(builtins))
	for _, l := range builtins {
		names = append(names, l.Name)
	}
	slices.Sort(names)
	return names
}

func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
