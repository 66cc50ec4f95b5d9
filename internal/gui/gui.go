// Package gui renders the scene in a raylib window: the shared vertex and
// index buffers are drawn as triangle lists around an orbital camera, and
// the simulation is advanced through the fixed-timestep accumulator so the
// simulated time rate does not depend on the frame rate.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/geom"
	"github.com/san-kum/ballsim/internal/phys"
	"github.com/san-kum/ballsim/internal/sim"
)

const maxStepsPerFrame = 64

var (
	colBg   = rl.NewColor(33, 38, 46, 255)
	colText = rl.NewColor(140, 140, 140, 255)
)

// Run opens the window and drives the scene until it is closed.
func Run(cfg *config.Config) error {
	sc, err := cfg.BuildScene()
	if err != nil {
		return err
	}

	rl.InitWindow(1280, 720, "ballsim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	camera := rl.NewCamera3D(
		rl.NewVector3(0, 0.6, 2.4),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		45,
		rl.CameraPerspective,
	)

	acc := sim.NewAccumulator(cfg.Dt, maxStepsPerFrame)
	running := true

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			running = !running
		}
		if rl.IsKeyPressed(rl.KeyR) {
			fresh, err := cfg.BuildScene()
			if err == nil {
				sc = fresh
				acc = sim.NewAccumulator(cfg.Dt, maxStepsPerFrame)
			}
		}

		if running {
			acc.Advance(float64(rl.GetFrameTime()), sc.Step)
		}

		rl.UpdateCamera(&camera, rl.CameraOrbital)

		rl.BeginDrawing()
		rl.ClearBackground(colBg)

		rl.BeginMode3D(camera)
		// Border rings are flat annuli; draw both windings so they stay
		// visible from either side of the plane.
		drawBuffers(sc.StaticVertices(), sc.StaticIndices(), true)
		drawBuffers(sc.DynamicVertices(), sc.DynamicIndices(), false)
		rl.EndMode3D()

		rl.DrawText(fmt.Sprintf("bodies: %d", sc.World().Len()), 10, 10, 20, colText)
		if !running {
			rl.DrawText("paused", 10, 34, 20, rl.Orange)
		}
		rl.DrawFPS(10, 690)
		rl.EndDrawing()
	}

	return nil
}

// drawBuffers walks a shared index buffer three entries at a time, exactly
// the ranges the meshes were appended with.
func drawBuffers(vertices []geom.Vertex, indices []uint32, doubleSided bool) {
	for k := 0; k+2 < len(indices); k += 3 {
		v0 := vertices[indices[k]]
		v1 := vertices[indices[k+1]]
		v2 := vertices[indices[k+2]]
		col := toColor(v0.Color)
		rl.DrawTriangle3D(toVec(v0.Pos), toVec(v1.Pos), toVec(v2.Pos), col)
		if doubleSided {
			rl.DrawTriangle3D(toVec(v2.Pos), toVec(v1.Pos), toVec(v0.Pos), col)
		}
	}
}

func toVec(v phys.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func toColor(c geom.Color) rl.Color {
	return rl.NewColor(
		uint8(c.R*255), uint8(c.G*255), uint8(c.B*255), uint8(c.A*255),
	)
}
