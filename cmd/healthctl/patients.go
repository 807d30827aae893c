package main

import (
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/spf13/cobra"

	"github.com/AmzurATG/heatlhcare-demo/client"
)

func newPatientsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Manage patient records",
	}
	cmd.AddCommand(
		newPatientsListCmd(a),
		newPatientsGetCmd(a),
		newPatientsCreateCmd(a),
		newPatientsUpdateCmd(a),
		newPatientsDeleteCmd(a),
		newPatientsSearchCmd(a),
		newPatientsStatsCmd(a),
		newPatientsFromFilesCmd(a),
	)
	return cmd
}

// validateDOB accepts an empty value or a YYYY-MM-DD date.
func validateDOB(dob string) error {
	if dob != "" && !strfmt.IsDate(dob) {
		return fmt.Errorf("invalid --dob %q: want YYYY-MM-DD", dob)
	}
	return nil
}

func optional(cmd *cobra.Command, flag, value string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return client.StringPtr(value)
}

func newPatientsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all patients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "patients list", func(c *client.Client) (any, error) {
				return c.GetPatients(cmd.Context())
			})
		},
	}
}

func newPatientsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <patient-id>",
		Short: "Show one patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "patients get", func(c *client.Client) (any, error) {
				return c.GetPatient(cmd.Context(), args[0])
			})
		},
	}
}

func newPatientsCreateCmd(a *app) *cobra.Command {
	var name, dob, diagnosis, prescription string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDOB(dob); err != nil {
				return err
			}
			in := client.PatientCreate{
				Name:         name,
				DateOfBirth:  dob,
				Diagnosis:    optional(cmd, "diagnosis", diagnosis),
				Prescription: optional(cmd, "prescription", prescription),
			}
			return a.run(cmd, "patients create", func(c *client.Client) (any, error) {
				return c.CreatePatient(cmd.Context(), in)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Patient name (required)")
	cmd.Flags().StringVar(&dob, "dob", "", "Date of birth, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&diagnosis, "diagnosis", "", "Diagnosis (optional)")
	cmd.Flags().StringVar(&prescription, "prescription", "", "Prescription (optional)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("dob")

	return cmd
}

func newPatientsUpdateCmd(a *app) *cobra.Command {
	var name, dob, diagnosis, prescription string

	cmd := &cobra.Command{
		Use:   "update <patient-id>",
		Short: "Update a patient",
		Long: "Update a patient. Name and date of birth are kept when omitted; " +
			"diagnosis and prescription are cleared unless given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDOB(dob); err != nil {
				return err
			}
			in := client.PatientUpdate{
				Name:         name,
				DateOfBirth:  dob,
				Diagnosis:    optional(cmd, "diagnosis", diagnosis),
				Prescription: optional(cmd, "prescription", prescription),
			}
			return a.run(cmd, "patients update", func(c *client.Client) (any, error) {
				return c.UpdatePatient(cmd.Context(), args[0], in)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&dob, "dob", "", "New date of birth, YYYY-MM-DD")
	cmd.Flags().StringVar(&diagnosis, "diagnosis", "", "Diagnosis")
	cmd.Flags().StringVar(&prescription, "prescription", "", "Prescription")

	return cmd
}

func newPatientsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <patient-id>",
		Short: "Delete a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "patients delete", func(c *client.Client) (any, error) {
				if err := c.DeletePatient(cmd.Context(), args[0]); err != nil {
					return nil, err
				}
				return map[string]any{"deleted": args[0]}, nil
			})
		},
	}
}

func newPatientsSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search patients by name or diagnosis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "patients search", func(c *client.Client) (any, error) {
				return c.SearchPatients(cmd.Context(), args[0], limit)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum results")
	return cmd
}

func newPatientsStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show patient statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "patients stats", func(c *client.Client) (any, error) {
				return c.GetPatientStats(cmd.Context())
			})
		},
	}
}

func newPatientsFromFilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "from-files <path>...",
		Short: "Create a patient extracted from documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := openFiles(args)
			if err != nil {
				return err
			}
			return a.run(cmd, "patients from-files", func(c *client.Client) (any, error) {
				return c.CreatePatientFromFiles(cmd.Context(), files)
			})
		},
	}
}
