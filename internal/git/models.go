package git

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Commit represents one commit of the walked history.
type Commit struct {
	Hash      string      `json:"hash"`
	ShortHash string      `json:"shortHash"`
	Author    string      `json:"author"`
	Email     string      `json:"email"`
	Date      string      `json:"date"`
	Timestamp int64       `json:"timestamp"` // epoch milliseconds
	Message   string      `json:"message"`
	Body      string      `json:"body"`
	Stats     ChangeStats `json:"stats"`
}

// ChangeStats is the parsed stat summary of a single commit.
type ChangeStats struct {
	FilesChanged int          `json:"filesChanged"`
	Files        []FileChange `json:"files"`
}

// FileChange is one line of a commit's stat summary.
// Changes is the total reported by git and may differ from Additions+Deletions
// because git scales the graph for large diffs.
type FileChange struct {
	Path      string `json:"path"`
	Changes   int    `json:"changes"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// NodeType is the kind of a tree node.
type NodeType string

const (
	NodeFile      NodeType = "file"
	NodeDirectory NodeType = "directory"
)

// RootName is the name of every tree's root node.
const RootName = "root"

// TreeNode is a file or directory in a commit's tree.
// Files have nil Children; the root has an empty Path.
type TreeNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path,omitempty"`
	Type     NodeType    `json:"type"`
	Children []*TreeNode `json:"children,omitempty"`
}

// IsDir reports whether the node is a directory.
func (n *TreeNode) IsDir() bool {
	return n.Type == NodeDirectory
}

// ChangeType classifies a line of a diff hunk.
type ChangeType string

const (
	ChangeAddition ChangeType = "addition"
	ChangeDeletion ChangeType = "deletion"
	ChangeContext  ChangeType = "context"
)

// LineChange is a single line inside a hunk with its marker stripped.
type LineChange struct {
	Type    ChangeType `json:"type"`
	Content string     `json:"content"`
}

// Hunk is a contiguous block of changes introduced by an "@@" line.
type Hunk struct {
	Header  string       `json:"header"`
	Changes []LineChange `json:"changes"`
}

// FileDiff holds the hunks of one file.
type FileDiff struct {
	Path  string `json:"path"`
	Hunks []Hunk `json:"hunks"`
}

// Diff is the structured diff between two commits.
type Diff struct {
	Files []FileDiff `json:"files"`
}

// Summary is the result of Analyzer.Stats.
type Summary struct {
	Commit     string `json:"commit"`
	TotalFiles int    `json:"totalFiles"`
	Timestamp  int64  `json:"timestamp"` // when the summary was computed, epoch milliseconds
}

// Options configures an Analyzer.
type Options struct {
	RepoPath  string
	StatWidth int      // column width passed to git show --stat
	Workers   int      // size of the stats worker pool
	Include   []string // Glob patterns to include in trees
	Exclude   []string // Glob patterns to exclude from trees
}

// MarshalJSON omits children for files but always emits them for directories,
// so an empty root encodes as "children": [].
func (n TreeNode) MarshalJSON() ([]byte, error) {
	type node struct {
		Name     string       `json:"name"`
		Path     string       `json:"path,omitempty"`
		Type     NodeType     `json:"type"`
		Children *[]*TreeNode `json:"children,omitempty"`
	}
	out := node{Name: n.Name, Path: n.Path, Type: n.Type}
	if n.IsDir() {
		children := n.Children
		if children == nil {
			children = []*TreeNode{}
		}
		out.Children = &children
	}
	return json.Marshal(out)
}
