package deps

import "strings"

// Group is one `npm install` invocation.
type Group struct {
	Packages []string
}

func (g Group) String() string {
	return strings.Join(g.Packages, " ")
}

// Args returns the npm arguments for installing g.
func (g Group) Args() []string {
	return append([]string{"install"}, g.Packages...)
}

// Command renders the shell command a user could run by hand.
func (g Group) Command() string {
	return npmBinary + " " + strings.Join(g.Args(), " ")
}

const npmBinary = "npm"

var defaultGroups = []Group{
	{Packages: []string{"next", "react", "react-dom"}},
	{Packages: []string{"tailwindcss", "postcss", "autoprefixer"}},
	{Packages: []string{"firebase", "@firebase/auth", "@firebase/firestore"}},
	{Packages: []string{"mongoose", "axios", "express", "dotenv"}},
	{Packages: []string{"ethers", "web3", "@openzeppelin/contracts", "thirdweb"}},
	{Packages: []string{"helia", "@helia/unixfs"}},
	{Packages: []string{"truffle", "eslint", "prettier", "husky", "lint-staged"}},
}

// Default returns a copy of the Heal-Sync dependency groups.
func Default() []Group {
	out := make([]Group, len(defaultGroups))
	for i, g := range defaultGroups {
		out[i] = Group{Packages: append([]string(nil), g.Packages...)}
	}
	return out
}
