package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achilleasa/spheretrace/scene"
	sceneio "github.com/achilleasa/spheretrace/scene/io"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Package a scene and its sky texture into a zip bundle.
func BundleScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() < 1 || ctx.NArg() > 2 {
		return errors.New("expected a scene file and an optional bundle file argument")
	}

	sceneFile := ctx.Args().Get(0)
	zipFile := ctx.Args().Get(1)
	if zipFile == "" {
		zipFile = strings.TrimSuffix(sceneFile, filepath.Ext(sceneFile)) + ".zip"
	}
	if filepath.Ext(zipFile) != ".zip" {
		return fmt.Errorf("bundle file %s must have a .zip extension", zipFile)
	}

	sc, err := sceneio.ReadScene(sceneFile)
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return sceneio.WriteScene(sc, zipFile)
}

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := sceneio.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Noticef("%s", sc.Camera)
	logger.Noticef("scene information:\n%s", sc.Stats())
	if len(sc.Objects) != 0 {
		logger.Noticef("scene objects:\n%s", objectTable(sc))
	}

	return nil
}

func objectTable(sc *scene.Scene) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Center", "Radius", "Material", "Parameters"})
	for idx, obj := range sc.Objects {
		table.Append([]string{
			fmt.Sprintf("%d", idx),
			obj.Center.String(),
			fmt.Sprintf("%3.3f", obj.Radius),
			obj.Material.Type.String(),
			materialParams(obj.Material),
		})
	}
	table.SetFooter([]string{"", "", "", "LIGHTS", fmt.Sprintf("%d", len(sc.Lights()))})
	table.Render()
	return buf.String()
}

func materialParams(m scene.Material) string {
	switch m.Type {
	case scene.LambertianMaterial:
		return fmt.Sprintf("albedo (%.3f, %.3f, %.3f)", m.Albedo[0], m.Albedo[1], m.Albedo[2])
	case scene.MetalMaterial:
		return fmt.Sprintf("albedo (%.3f, %.3f, %.3f), fuzz %.3f", m.Albedo[0], m.Albedo[1], m.Albedo[2], m.Fuzz)
	case scene.GlassMaterial:
		return fmt.Sprintf("refractive index %.3f", m.RefractiveIndex)
	}
	return ""
}
