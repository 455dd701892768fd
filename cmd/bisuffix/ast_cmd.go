package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/deepnoodle-ai/bisuffix/ast"
	"github.com/deepnoodle-ai/bisuffix/parser"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Display the AST for an expression",
	Args:  cobra.MaximumNArgs(1),
	RunE:  astHandler,
}

func init() {
	f := astCmd.Flags()
	f.StringP("output", "o", "text", "Output format (text or json)")
	viper.BindPFlag("output", f.Lookup("output"))
}

func astHandler(cmd *cobra.Command, args []string) error {
	processGlobalFlags()

	code, err := getExprCode(cmd, args)
	if err != nil {
		return err
	}

	var parserOpts []parser.Option
	if filename := getFilename(args); filename != "" {
		parserOpts = append(parserOpts, parser.WithFilename(filename))
	}
	expr, err := parser.Parse(cmd.Context(), code, parserOpts...)
	if err != nil {
		return err
	}

	if viper.GetString("output") == "json" {
		return printASTJSON(expr)
	}
	printNode(expr, "", true)
	return nil
}

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

func printASTJSON(expr ast.Expr) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(nodeToJSON(expr))
}

func nodeToJSON(node ast.Node) *ASTNode {
	if node == nil {
		return nil
	}

	typeName := reflect.TypeOf(node).Elem().Name()
	result := &ASTNode{Type: typeName}

	switch n := node.(type) {
	case *ast.Ident:
		result.Value = n.Name
	case *ast.Int:
		result.Value = n.Value
	case *ast.Float:
		result.Value = n.Value
	case *ast.String:
		result.Value = n.Value
	case *ast.Bool:
		result.Value = n.Value
	case *ast.Nil:
		result.Value = nil
	case *ast.Prefix:
		result.Value = n.Op
		result.Children = append(result.Children, nodeToJSON(n.X))
	case *ast.Infix:
		result.Value = n.Op
		result.Children = append(result.Children, nodeToJSON(n.X), nodeToJSON(n.Y))
	case *ast.Group:
		result.Children = append(result.Children, nodeToJSON(n.X))
	case *ast.Call:
		result.Children = append(result.Children, nodeToJSON(n.Fun))
		for _, arg := range n.Args {
			result.Children = append(result.Children, nodeToJSON(arg))
		}
	case *ast.ObjectCall:
		result.Value = n.Call.Fun.String()
		result.Children = append(result.Children, nodeToJSON(n.X))
		for _, arg := range n.Call.Args {
			result.Children = append(result.Children, nodeToJSON(arg))
		}
	case *ast.GetAttr:
		result.Value = n.Attr.Name
		result.Children = append(result.Children, nodeToJSON(n.X))
	case *ast.Index:
		result.Children = append(result.Children, nodeToJSON(n.X), nodeToJSON(n.Index))
	case *ast.Await:
		result.Children = append(result.Children, nodeToJSON(n.X))
	case *ast.Try:
		result.Children = append(result.Children, nodeToJSON(n.X))
	}

	return result
}

// Colors for the AST tree display
var (
	nodeColor    = color.New(color.FgCyan, color.Bold)
	fieldColor   = color.New(color.FgMagenta)
	literalColor = color.New(color.FgYellow)
	mutedColor   = color.New(color.FgHiBlack)
)

func printNode(node ast.Node, indent string, isLast bool) {
	if node == nil {
		return
	}

	connector := "├─ "
	childIndent := indent + "│  "
	if isLast {
		connector = "└─ "
		childIndent = indent + "   "
	}
	if indent == "" && isLast {
		connector = ""
		childIndent = ""
	}

	typeName := reflect.TypeOf(node).Elem().Name()
	prefix := mutedColor.Sprint(indent + connector)

	switch n := node.(type) {
	case *ast.Ident:
		fmt.Printf("%s%s %s\n", prefix, nodeColor.Sprint(typeName),
			literalColor.Sprintf("%q", n.Name))
	case *ast.Int:
		fmt.Printf("%s%s %s\n", prefix, nodeColor.Sprint(typeName),
			literalColor.Sprintf("%d", n.Value))
	case *ast.Float:
		fmt.Printf("%s%s %s\n", prefix, nodeColor.Sprint(typeName),
			literalColor.Sprintf("%g", n.Value))
	case *ast.String:
		fmt.Printf("%s%s %s\n", prefix, nodeColor.Sprint(typeName),
			literalColor.Sprintf("%q", n.Value))
	case *ast.Bool:
		fmt.Printf("%s%s %s\n", prefix, nodeColor.Sprint(typeName),
			literalColor.Sprintf("%v", n.Value))
	case *ast.Nil:
		fmt.Printf("%s%s\n", prefix, nodeColor.Sprint(typeName))
	case *ast.Prefix:
		fmt.Printf("%s%s %s\n", prefix, nodeColor.Sprint(typeName),
			fieldColor.Sprint(n.Op))
		printNode(n.X, childIndent, true)
	case *ast.Infix:
		fmt.Printf("%s%s %s\n", prefix, nodeColor.Sprint(typeName),
			fieldColor.Sprint(n.Op))
		printNode(n.X, childIndent, false)
		printNode(n.Y, childIndent, true)
	case *ast.Group:
		fmt.Printf("%s%s\n", prefix, nodeColor.Sprint(typeName))
		printNode(n.X, childIndent, true)
	case *ast.Call:
		fmt.Printf("%s%s\n", prefix, nodeColor.Sprint(typeName))
		printNode(n.Fun, childIndent, len(n.Args) == 0)
		for i, arg := range n.Args {
			printNode(arg, childIndent, i == len(n.Args)-1)
		}
	case *ast.ObjectCall:
		fmt.Printf("%s%s %s\n", prefix, nodeColor.Sprint(typeName),
			fieldColor.Sprintf(".%s()", n.Call.Fun.String()))
		printNode(n.X, childIndent, len(n.Call.Args) == 0)
		for i, arg := range n.Call.Args {
			printNode(arg, childIndent, i == len(n.Call.Args)-1)
		}
	case *ast.GetAttr:
		fmt.Printf("%s%s %s\n", prefix, nodeColor.Sprint(typeName),
			fieldColor.Sprintf(".%s", n.Attr.Name))
		printNode(n.X, childIndent, true)
	case *ast.Index:
		fmt.Printf("%s%s\n", prefix, nodeColor.Sprint(typeName))
		printNode(n.X, childIndent, false)
		printNode(n.Index, childIndent, true)
	case *ast.Await:
		fmt.Printf("%s%s\n", prefix, nodeColor.Sprint(typeName))
		printNode(n.X, childIndent, true)
	case *ast.Try:
		fmt.Printf("%s%s\n", prefix, nodeColor.Sprint(typeName))
		printNode(n.X, childIndent, true)
	default:
		fmt.Printf("%s%s\n", prefix, nodeColor.Sprint(typeName))
	}
}
